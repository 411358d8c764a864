package application

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/user"
)

type UserService struct {
	userRepo user.Repository
}

func NewUserService(ur user.Repository) *UserService {
	return &UserService{userRepo: ur}
}

type UpdateUserInput struct {
	Name  *string
	Image *string
}

func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser は名前と画像のみを更新する
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Image != nil {
		u.Image = *input.Image
	}
	u.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
