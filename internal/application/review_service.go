package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/review"
)

type ReviewService struct {
	reviewRepo       review.Repository
	eventRepo        event.Repository
	registrationRepo registration.Repository
	now              func() time.Time
}

func NewReviewService(rv review.Repository, er event.Repository, rr registration.Repository) *ReviewService {
	return &ReviewService{reviewRepo: rv, eventRepo: er, registrationRepo: rr, now: time.Now}
}

type ReviewInput struct {
	Rating  int
	Comment string
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// CreateReview は終了したイベントに参加したユーザーのレビューを作成する
func (s *ReviewService) CreateReview(ctx context.Context, eventID, userID string, input ReviewInput) (*review.Review, error) {
	if err := review.ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.HasEnded(s.now()) {
		return nil, review.ErrEventNotEnded
	}

	if _, err := s.registrationRepo.GetActiveByEventAndUser(ctx, nil, eventID, userID); err != nil {
		if errors.Is(err, registration.ErrRegistrationNotFound) {
			return nil, review.ErrNotAttended
		}
		return nil, fmt.Errorf("参加履歴の確認に失敗: %w", err)
	}

	if _, err := s.reviewRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, review.ErrAlreadyReviewed
	} else if !errors.Is(err, review.ErrReviewNotFound) {
		return nil, fmt.Errorf("既存レビューの確認に失敗: %w", err)
	}

	r := review.NewReview(eventID, userID, input.Rating, input.Comment)
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*review.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *ReviewService) GetEventReviews(ctx context.Context, eventID string) ([]*review.Review, error) {
	return s.reviewRepo.ListByEvent(ctx, eventID)
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]*review.Review, error) {
	return s.reviewRepo.ListByUser(ctx, userID)
}

func (s *ReviewService) GetEventAverageRating(ctx context.Context, eventID string) (*review.Rating, error) {
	return s.reviewRepo.GetAverageRating(ctx, eventID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id, userID string, input UpdateReviewInput) (*review.Review, error) {
	r, err := s.getOwnedReview(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if input.Rating != nil {
		if err := review.ValidateRating(*input.Rating); err != nil {
			return nil, err
		}
		r.Rating = *input.Rating
	}
	if input.Comment != nil {
		r.Comment = *input.Comment
	}
	r.UpdatedAt = s.now()
	if err := s.reviewRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, userID string) error {
	r, err := s.getOwnedReview(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, r.ID)
}

func (s *ReviewService) getOwnedReview(ctx context.Context, id, userID string) (*review.Review, error) {
	r, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsAuthor(userID) {
		return nil, review.ErrNotAuthor
	}
	return r, nil
}
