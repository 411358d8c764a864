package application

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
)

type PostService struct {
	postRepo post.Repository
}

func NewPostService(pr post.Repository) *PostService {
	return &PostService{postRepo: pr}
}

type PostInput struct {
	Title     string
	Content   string
	Published bool
}

type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
}

func (s *PostService) GetAllPosts(ctx context.Context) ([]*post.Post, error) {
	return s.postRepo.List(ctx, "")
}

func (s *PostService) GetUserPosts(ctx context.Context, authorID string) ([]*post.Post, error) {
	return s.postRepo.List(ctx, authorID)
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*post.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, authorID string, input PostInput) (*post.Post, error) {
	now := time.Now()
	p := &post.Post{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id int64, authorID string, input UpdatePostInput) (*post.Post, error) {
	p, err := s.getOwnedPost(ctx, id, authorID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	if input.Published != nil {
		p.Published = *input.Published
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64, authorID string) error {
	p, err := s.getOwnedPost(ctx, id, authorID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, p.ID)
}

func (s *PostService) getOwnedPost(ctx context.Context, id int64, authorID string) (*post.Post, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthor(authorID) {
		return nil, post.ErrNotAuthor
	}
	return p, nil
}
