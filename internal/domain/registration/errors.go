package registration

import "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"

// Registration ドメインのエラー定義
var (
	ErrRegistrationNotFound  = apperror.NotFound("参加登録が見つかりません")
	ErrInvalidQRCode         = apperror.NotFound("無効なQRコードです")
	ErrNotOwner              = apperror.Forbidden("自分の参加登録ではありません")
	ErrInvalidAttendeeCount  = apperror.Invalid("参加人数は1以上である必要があります")
	ErrAlreadyRegistered     = apperror.Conflict("既にこのイベントに参加登録しています")
	ErrDuplicateRegistration = apperror.Duplicate("既にこのイベントに参加登録しています")
	ErrAlreadyCancelled      = apperror.Conflict("参加登録は既にキャンセルされています")
	ErrCannotCancelPast      = apperror.Conflict("終了したイベントの参加登録はキャンセルできません")
	ErrCannotCancelCheckedIn = apperror.Conflict("チェックイン済みの参加登録はキャンセルできません")
	ErrCheckInCancelled      = apperror.Conflict("キャンセルされた参加登録はチェックインできません")
	ErrAlreadyCheckedIn      = apperror.Conflict("参加者は既にチェックイン済みです")
	ErrQRCodeGeneration      = apperror.Internal("一意なQRコードの生成に失敗しました")
)

// ErrRegistrationBusy は同一イベントへの参加登録が混雑している場合のエラー
var ErrRegistrationBusy = apperror.Conflict("参加登録が混み合っています。しばらくしてから再度お試しください")
