// Package apperror はアプリケーション全体で使う種別付きエラーを定義する
package apperror

import "errors"

// Kind はエラーの種別を表す
// ハンドラーは Kind を網羅的に switch して HTTP ステータスを決める
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindUnauthenticated
	KindInvalidInput
	KindConflict
	KindDuplicate
)

// String は種別名を返す
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindDuplicate:
		return "duplicate"
	default:
		return "internal"
	}
}

// Error は種別とメッセージを持つドメインエラー
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New は新しいエラーを作成する
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NotFound は KindNotFound のエラーを作成する
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Forbidden は KindForbidden のエラーを作成する
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// Invalid は KindInvalidInput のエラーを作成する
func Invalid(message string) *Error { return New(KindInvalidInput, message) }

// Conflict は KindConflict のエラーを作成する
func Conflict(message string) *Error { return New(KindConflict, message) }

// Duplicate は KindDuplicate のエラーを作成する
func Duplicate(message string) *Error { return New(KindDuplicate, message) }

// Internal は KindInternal のエラーを作成する
func Internal(message string) *Error { return New(KindInternal, message) }

// As はエラーチェーンから *Error を取り出す
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf はエラーの種別を返す。*Error を含まない場合は KindInternal
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
