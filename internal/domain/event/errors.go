package event

import "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"

// Event ドメインのエラー定義
var (
	ErrEventNotFound           = apperror.NotFound("イベントが見つかりません")
	ErrNotOrganizer            = apperror.Forbidden("このイベントの主催者ではありません")
	ErrTitleRequired           = apperror.Invalid("タイトルは必須です")
	ErrDatesRequired           = apperror.Invalid("開始日時と終了日時は必須です")
	ErrInvalidEventTime        = apperror.Invalid("終了日時は開始日時より後である必要があります")
	ErrInvalidCategory         = apperror.Invalid("カテゴリが不正です")
	ErrInvalidStatus           = apperror.Invalid("ステータスが不正です")
	ErrInvalidVisibility       = apperror.Invalid("公開範囲が不正です")
	ErrInvalidLocationType     = apperror.Invalid("開催形態が不正です")
	ErrInvalidCapacity         = apperror.Invalid("定員は1以上である必要があります")
	ErrNotOpenForRegistration  = apperror.Conflict("イベントは参加登録を受け付けていません")
	ErrEventFull               = apperror.Conflict("イベントは満席です")
	ErrCapacityBelowAttendance = apperror.Conflict("定員を現在の参加人数より少なくすることはできません")
	ErrEventEnded              = apperror.Conflict("イベントは既に終了しています")
	ErrSlugTaken               = apperror.Duplicate("スラッグは既に使用されています")
)
