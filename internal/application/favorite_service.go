package application

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/favorite"
)

type FavoriteService struct {
	favoriteRepo favorite.Repository
	eventRepo    event.Repository
}

func NewFavoriteService(fr favorite.Repository, er event.Repository) *FavoriteService {
	return &FavoriteService{favoriteRepo: fr, eventRepo: er}
}

func (s *FavoriteService) AddToFavorites(ctx context.Context, userID, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, &favorite.Favorite{UserID: userID, EventID: eventID, CreatedAt: time.Now()})
}

func (s *FavoriteService) RemoveFromFavorites(ctx context.Context, userID, eventID string) error {
	return s.favoriteRepo.Remove(ctx, userID, eventID)
}

// ToggleFavorite はお気に入り状態を反転し、反転後の状態を返す
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.RemoveFromFavorites(ctx, userID, eventID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.AddToFavorites(ctx, userID, eventID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID, eventID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.favoriteRepo.Exists(ctx, userID, eventID)
}

func (s *FavoriteService) GetUserFavorites(ctx context.Context, userID string) ([]*event.Event, error) {
	return s.favoriteRepo.ListEventsByUser(ctx, userID)
}
