package ticket

import "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"

// Ticket ドメインのエラー定義
var (
	ErrTicketNotFound     = apperror.NotFound("チケットが見つかりません")
	ErrTicketNotForEvent  = apperror.NotFound("このイベントのチケットではありません")
	ErrNameRequired       = apperror.Invalid("チケット名は必須です")
	ErrInvalidPrice       = apperror.Invalid("価格は0以上である必要があります")
	ErrInvalidQuantity    = apperror.Invalid("販売数は1以上である必要があります")
	ErrQuantityBelowSold  = apperror.Invalid("販売数は販売済み数を下回れません")
	ErrInvalidSalesPeriod = apperror.Invalid("販売終了日時は販売開始日時より後である必要があります")
	ErrInvalidCount       = apperror.Invalid("枚数は1以上である必要があります")
	ErrNotEnoughTickets   = apperror.Conflict("チケットの残数が不足しています")
	ErrSoldUnderflow      = apperror.Conflict("販売済み数を減らせません")
	ErrHasRegistrations   = apperror.Conflict("参加登録があるチケットは削除できません")
)

// 販売不可の理由ごとのエラー
var (
	ErrSalesNotStarted = apperror.Conflict(ReasonNotStarted)
	ErrSalesEnded      = apperror.Conflict(ReasonEnded)
	ErrSoldOut         = apperror.Conflict(ReasonSoldOut)
)

// UnavailableError は販売不可の理由に対応するエラーを返す
func UnavailableError(reason string) error {
	switch reason {
	case ReasonNotStarted:
		return ErrSalesNotStarted
	case ReasonEnded:
		return ErrSalesEnded
	case ReasonSoldOut:
		return ErrSoldOut
	}
	return apperror.Conflict("チケットは購入できません")
}
