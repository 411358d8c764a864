package review

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review はイベントのレビューを表す
type Review struct {
	ID        string
	EventID   string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rating はイベントの平均評価
type Rating struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// NewReview は新しいレビューを作成する
func NewReview(eventID, userID string, rating int, comment string) *Review {
	now := time.Now()
	return &Review{
		EventID:   eventID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateRating は評価が1から5の範囲内かを検証する
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// IsAuthor は指定ユーザーが投稿者かを返す
func (r *Review) IsAuthor(userID string) bool {
	return userID != "" && r.UserID == userID
}
