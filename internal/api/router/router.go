package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/handler"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/middleware"
)

// Handlers はルーティング対象のハンドラー一式
type Handlers struct {
	Health       *handler.HealthHandler
	Event        *handler.EventHandler
	Ticket       *handler.TicketHandler
	Registration *handler.RegistrationHandler
	Review       *handler.ReviewHandler
	Favorite     *handler.FavoriteHandler
	User         *handler.UserHandler
	Post         *handler.PostHandler
}

// Options はルーティングの付随設定
type Options struct {
	// MetricsHandler が nil の場合 /metrics は登録しない
	MetricsHandler  http.Handler
	MetricsUser     string
	MetricsPassword string
}

// Register はすべてのルートを登録する
func Register(e *echo.Echo, h Handlers, auth *middleware.Authenticator, opts Options) {
	e.GET("/health", h.Health.Check)
	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler),
			middleware.MetricsBasicAuth(opts.MetricsUser, opts.MetricsPassword))
	}

	requireAuth := auth.RequireAuth()
	optionalAuth := auth.OptionalAuth()

	api := e.Group("/api")

	// イベント
	api.GET("/events", h.Event.List)
	api.POST("/events", h.Event.Create, requireAuth)
	api.GET("/events/slug/:slug", h.Event.GetBySlug)
	api.GET("/events/:id", h.Event.GetByID)
	api.PATCH("/events/:id", h.Event.Update, requireAuth)
	api.DELETE("/events/:id", h.Event.Delete, requireAuth)
	api.GET("/events/:id/stats", h.Event.Stats, requireAuth)

	// チケット
	api.GET("/events/:id/tickets", h.Ticket.ListByEvent)
	api.POST("/events/:id/tickets", h.Ticket.Create, requireAuth)
	api.GET("/tickets/:id", h.Ticket.GetByID)
	api.GET("/tickets/:id/availability", h.Ticket.Availability)
	api.PATCH("/tickets/:id", h.Ticket.Update, requireAuth)
	api.DELETE("/tickets/:id", h.Ticket.Delete, requireAuth)

	// 参加登録
	api.POST("/events/:id/register", h.Registration.Register, requireAuth)
	api.GET("/events/:id/registrations", h.Registration.ListByEvent, requireAuth)
	api.GET("/registrations", h.Registration.ListMine, requireAuth)
	api.POST("/registrations/checkin-qr", h.Registration.CheckInByQR, requireAuth)
	api.GET("/registrations/:id", h.Registration.GetByID)
	api.PATCH("/registrations/:id/cancel", h.Registration.Cancel, requireAuth)
	api.POST("/registrations/:id/checkin", h.Registration.CheckIn, requireAuth)

	// レビュー
	api.GET("/events/:id/reviews", h.Review.ListByEvent)
	api.GET("/events/:id/rating", h.Review.Rating)
	api.POST("/events/:id/reviews", h.Review.Create, requireAuth)
	api.PATCH("/reviews/:id", h.Review.Update, requireAuth)
	api.DELETE("/reviews/:id", h.Review.Delete, requireAuth)

	// お気に入り
	api.POST("/events/:id/favorite", h.Favorite.Add, requireAuth)
	api.DELETE("/events/:id/favorite", h.Favorite.Remove, requireAuth)
	api.POST("/events/:id/toggle-favorite", h.Favorite.Toggle, requireAuth)
	api.GET("/events/:id/is-favorited", h.Favorite.IsFavorited, optionalAuth)

	// ユーザー
	api.GET("/users/me", h.User.Me, requireAuth)
	api.PATCH("/users/me", h.User.UpdateMe, requireAuth)
	api.GET("/users/me/favorites", h.Favorite.ListMine, requireAuth)
	api.GET("/users/me/reviews", h.Review.ListMine, requireAuth)
	api.GET("/users/:id", h.User.GetByID)

	// 投稿
	api.GET("/posts", h.Post.List)
	api.POST("/posts", h.Post.Create, requireAuth)
	api.GET("/posts/:id", h.Post.GetByID)
	api.PATCH("/posts/:id", h.Post.Update, requireAuth)
	api.DELETE("/posts/:id", h.Post.Delete, requireAuth)
}
