package handler

import (
	"context"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/review"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/user"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput, organizerID string) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*event.Event, error)
	GetAllEvents(ctx context.Context, filter event.Filter) (*application.EventList, error)
	UpdateEvent(ctx context.Context, id string, input application.UpdateEventInput, userID string) (*event.Event, error)
	DeleteEvent(ctx context.Context, id, userID string) error
	GetEventStats(ctx context.Context, id, userID string) (*event.Stats, error)
}

// TicketServiceInterface はチケットサービスのインターフェース
type TicketServiceInterface interface {
	CreateTicket(ctx context.Context, eventID string, input application.CreateTicketInput, userID string) (*ticket.Ticket, error)
	GetEventTickets(ctx context.Context, eventID string) ([]*ticket.Ticket, error)
	GetTicket(ctx context.Context, id string) (*ticket.Ticket, error)
	UpdateTicket(ctx context.Context, id string, input application.UpdateTicketInput, userID string) (*ticket.Ticket, error)
	DeleteTicket(ctx context.Context, id, userID string) error
	CheckTicketAvailability(ctx context.Context, id string) (*ticket.Availability, error)
}

// RegistrationServiceInterface は参加登録サービスのインターフェース
type RegistrationServiceInterface interface {
	RegisterForEvent(ctx context.Context, eventID, userID string, input application.RegisterInput) (*registration.Registration, error)
	GetRegistration(ctx context.Context, id string) (*registration.Registration, error)
	GetUserRegistrations(ctx context.Context, userID string) ([]*registration.Registration, error)
	GetEventRegistrations(ctx context.Context, eventID, userID string) ([]*registration.Registration, error)
	CancelRegistration(ctx context.Context, id, userID string) (*registration.Registration, error)
	CheckInAttendee(ctx context.Context, id, organizerID string) (*registration.Registration, error)
	CheckInByQRCode(ctx context.Context, qrCode, organizerID string) (*application.CheckInResult, error)
}

// ReviewServiceInterface はレビューサービスのインターフェース
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, eventID, userID string, input application.ReviewInput) (*review.Review, error)
	GetEventReviews(ctx context.Context, eventID string) ([]*review.Review, error)
	GetUserReviews(ctx context.Context, userID string) ([]*review.Review, error)
	GetEventAverageRating(ctx context.Context, eventID string) (*review.Rating, error)
	UpdateReview(ctx context.Context, id, userID string, input application.UpdateReviewInput) (*review.Review, error)
	DeleteReview(ctx context.Context, id, userID string) error
}

// FavoriteServiceInterface はお気に入りサービスのインターフェース
type FavoriteServiceInterface interface {
	AddToFavorites(ctx context.Context, userID, eventID string) error
	RemoveFromFavorites(ctx context.Context, userID, eventID string) error
	ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error)
	IsFavorited(ctx context.Context, userID, eventID string) (bool, error)
	GetUserFavorites(ctx context.Context, userID string) ([]*event.Event, error)
}

// UserServiceInterface はユーザーサービスのインターフェース
type UserServiceInterface interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
	UpdateUser(ctx context.Context, id string, input application.UpdateUserInput) (*user.User, error)
}

// PostServiceInterface は投稿サービスのインターフェース
type PostServiceInterface interface {
	GetAllPosts(ctx context.Context) ([]*post.Post, error)
	GetUserPosts(ctx context.Context, authorID string) ([]*post.Post, error)
	GetPost(ctx context.Context, id int64) (*post.Post, error)
	CreatePost(ctx context.Context, authorID string, input application.PostInput) (*post.Post, error)
	UpdatePost(ctx context.Context, id int64, authorID string, input application.UpdatePostInput) (*post.Post, error)
	DeletePost(ctx context.Context, id int64, authorID string) error
}

var (
	_ EventServiceInterface        = (*application.EventService)(nil)
	_ TicketServiceInterface       = (*application.TicketService)(nil)
	_ RegistrationServiceInterface = (*application.RegistrationService)(nil)
	_ ReviewServiceInterface       = (*application.ReviewService)(nil)
	_ FavoriteServiceInterface     = (*application.FavoriteService)(nil)
	_ UserServiceInterface         = (*application.UserService)(nil)
	_ PostServiceInterface         = (*application.PostService)(nil)
)
