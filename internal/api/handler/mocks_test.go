package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/review"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/user"
)

// serve はリクエストをEchoへ流し、レスポンスを返す
func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// MockEventService はEventServiceInterfaceのモック
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, input application.CreateEventInput, organizerID string) (*event.Event, error) {
	args := m.Called(ctx, input, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventService) GetEventBySlug(ctx context.Context, slug string) (*event.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventService) GetAllEvents(ctx context.Context, filter event.Filter) (*application.EventList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.EventList), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id string, input application.UpdateEventInput, userID string) (*event.Event, error) {
	args := m.Called(ctx, id, input, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockEventService) GetEventStats(ctx context.Context, id, userID string) (*event.Stats, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Stats), args.Error(1)
}

// MockTicketService はTicketServiceInterfaceのモック
type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) CreateTicket(ctx context.Context, eventID string, input application.CreateTicketInput, userID string) (*ticket.Ticket, error) {
	args := m.Called(ctx, eventID, input, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) GetEventTickets(ctx context.Context, eventID string) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) GetTicket(ctx context.Context, id string) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) UpdateTicket(ctx context.Context, id string, input application.UpdateTicketInput, userID string) (*ticket.Ticket, error) {
	args := m.Called(ctx, id, input, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) DeleteTicket(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockTicketService) CheckTicketAvailability(ctx context.Context, id string) (*ticket.Availability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Availability), args.Error(1)
}

// MockRegistrationService はRegistrationServiceInterfaceのモック
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) RegisterForEvent(ctx context.Context, eventID, userID string, input application.RegisterInput) (*registration.Registration, error) {
	args := m.Called(ctx, eventID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) GetRegistration(ctx context.Context, id string) (*registration.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) GetUserRegistrations(ctx context.Context, userID string) ([]*registration.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) GetEventRegistrations(ctx context.Context, eventID, userID string) ([]*registration.Registration, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) CancelRegistration(ctx context.Context, id, userID string) (*registration.Registration, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) CheckInAttendee(ctx context.Context, id, organizerID string) (*registration.Registration, error) {
	args := m.Called(ctx, id, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Registration), args.Error(1)
}

func (m *MockRegistrationService) CheckInByQRCode(ctx context.Context, qrCode, organizerID string) (*application.CheckInResult, error) {
	args := m.Called(ctx, qrCode, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CheckInResult), args.Error(1)
}

// MockReviewService はReviewServiceInterfaceのモック
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, eventID, userID string, input application.ReviewInput) (*review.Review, error) {
	args := m.Called(ctx, eventID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) GetEventReviews(ctx context.Context, eventID string) ([]*review.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

func (m *MockReviewService) GetUserReviews(ctx context.Context, userID string) ([]*review.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

func (m *MockReviewService) GetEventAverageRating(ctx context.Context, eventID string) (*review.Rating, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Rating), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id, userID string, input application.UpdateReviewInput) (*review.Review, error) {
	args := m.Called(ctx, id, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

// MockFavoriteService はFavoriteServiceInterfaceのモック
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddToFavorites(ctx context.Context, userID, eventID string) error {
	return m.Called(ctx, userID, eventID).Error(0)
}

func (m *MockFavoriteService) RemoveFromFavorites(ctx context.Context, userID, eventID string) error {
	return m.Called(ctx, userID, eventID).Error(0)
}

func (m *MockFavoriteService) ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) IsFavorited(ctx context.Context, userID, eventID string) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) GetUserFavorites(ctx context.Context, userID string) ([]*event.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

// MockUserService はUserServiceInterfaceのモック
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, input application.UpdateUserInput) (*user.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockPostService はPostServiceInterfaceのモック
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetAllPosts(ctx context.Context) ([]*post.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*post.Post), args.Error(1)
}

func (m *MockPostService) GetUserPosts(ctx context.Context, authorID string) ([]*post.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*post.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id int64) (*post.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, input application.PostInput) (*post.Post, error) {
	args := m.Called(ctx, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, id int64, authorID string, input application.UpdatePostInput) (*post.Post, error) {
	args := m.Called(ctx, id, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, id int64, authorID string) error {
	return m.Called(ctx, id, authorID).Error(0)
}

var (
	_ EventServiceInterface        = (*MockEventService)(nil)
	_ TicketServiceInterface       = (*MockTicketService)(nil)
	_ RegistrationServiceInterface = (*MockRegistrationService)(nil)
	_ ReviewServiceInterface       = (*MockReviewService)(nil)
	_ FavoriteServiceInterface     = (*MockFavoriteService)(nil)
	_ UserServiceInterface         = (*MockUserService)(nil)
	_ PostServiceInterface         = (*MockPostService)(nil)
)
