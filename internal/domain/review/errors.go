package review

import "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"

var (
	ErrReviewNotFound  = apperror.NotFound("レビューが見つかりません")
	ErrNotAuthor       = apperror.Forbidden("自分のレビューではありません")
	ErrInvalidRating   = apperror.Invalid("評価は1から5の範囲で指定してください")
	ErrEventNotEnded   = apperror.Conflict("レビューできるのは終了したイベントのみです")
	ErrNotAttended     = apperror.Conflict("レビューするにはイベントに参加している必要があります")
	ErrAlreadyReviewed = apperror.Conflict("既にこのイベントをレビューしています")
	ErrDuplicateReview = apperror.Duplicate("既にこのイベントをレビューしています")
)
