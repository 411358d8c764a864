package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
)

func sampleEvent() *event.Event {
	start := time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC)
	capacity := 100
	return &event.Event{
		ID:           "event-123",
		Slug:         "go-conference",
		Title:        "Go Conference",
		StartDate:    start,
		EndDate:      start.Add(3 * time.Hour),
		LocationType: event.LocationPhysical,
		Category:     event.CategoryConference,
		Capacity:     &capacity,
		Status:       event.StatusPublished,
		Visibility:   event.VisibilityPublic,
		OrganizerID:  "organizer-1",
		CreatedAt:    start,
		UpdatedAt:    start,
	}
}

func newEventEcho(svc *MockEventService, userID string) *echo.Echo {
	e := NewTestEcho()
	h := NewEventHandler(svc)
	g := e.Group("/api", WithTestUser(userID))
	g.GET("/events", h.List)
	g.POST("/events", h.Create)
	g.GET("/events/slug/:slug", h.GetBySlug)
	g.GET("/events/:id", h.GetByID)
	g.PATCH("/events/:id", h.Update)
	g.DELETE("/events/:id", h.Delete)
	g.GET("/events/:id/stats", h.Stats)
	return e
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("正常にイベントを作成できる", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("CreateEvent", mock.Anything, mock.MatchedBy(func(in application.CreateEventInput) bool {
			return in.Title == "Go Conference" &&
				in.Category == event.CategoryConference &&
				in.Capacity != nil && *in.Capacity == 100 &&
				in.EndDate.Sub(in.StartDate) == 3*time.Hour
		}), "organizer-1").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPost, "/api/events", `{
			"title": "Go Conference",
			"startDate": "2026-12-31T18:00:00Z",
			"endDate": "2026-12-31T21:00:00Z",
			"category": "CONFERENCE",
			"capacity": 100
		}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Event EventResponse `json:"event"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "event-123", resp.Event.ID)
		assert.Equal(t, "go-conference", resp.Event.Slug)
		assert.Equal(t, "2026-12-31T18:00:00Z", resp.Event.StartDate)
		assert.Equal(t, []string{}, resp.Event.Tags)
		svc.AssertExpectations(t)
	})

	t.Run("未認証の場合は401", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, ""), http.MethodPost, "/api/events", `{"title":"x"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("不正なJSONは400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPost, "/api/events", "invalid json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("タイトルが無い場合は400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPost, "/api/events", `{
			"startDate": "2026-12-31T18:00:00Z",
			"endDate": "2026-12-31T21:00:00Z",
			"category": "CONFERENCE"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("不正な日時形式は400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPost, "/api/events", `{
			"title": "Go Conference",
			"startDate": "invalid-date",
			"endDate": "2026-12-31T21:00:00Z",
			"category": "CONFERENCE"
		}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "startDate")
	})

	t.Run("ドメインエラーはステータスに変換される", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("CreateEvent", mock.Anything, mock.Anything, "organizer-1").Return(nil, event.ErrInvalidEventTime)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPost, "/api/events", `{
			"title": "Go Conference",
			"startDate": "2026-12-31T21:00:00Z",
			"endDate": "2026-12-31T18:00:00Z",
			"category": "CONFERENCE"
		}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, event.ErrInvalidEventTime.Message, resp.Error)
	})
}

func TestEventHandler_Get(t *testing.T) {
	t.Run("IDで取得できる", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("GetEvent", mock.Anything, "event-123").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, ""), http.MethodGet, "/api/events/event-123", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"event":`)
	})

	t.Run("スラッグで取得できる", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("GetEventBySlug", mock.Anything, "go-conference").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, ""), http.MethodGet, "/api/events/slug/go-conference", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("存在しない場合は404", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("GetEvent", mock.Anything, "missing").Return(nil, event.ErrEventNotFound)

		rec := serve(newEventEcho(svc, ""), http.MethodGet, "/api/events/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventHandler_List(t *testing.T) {
	t.Run("検索条件がフィルタに渡される", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("GetAllEvents", mock.Anything, mock.MatchedBy(func(f event.Filter) bool {
			return f.Category == event.CategoryConference &&
				f.Search == "go" &&
				f.Limit == 5 && f.Offset == 10 &&
				f.StartDate != nil && f.EndDate == nil
		})).Return(&application.EventList{
			Events: []*event.Event{sampleEvent()},
			Total:  11,
			Limit:  5,
			Offset: 10,
		}, nil)

		rec := serve(newEventEcho(svc, ""), http.MethodGet,
			"/api/events?category=CONFERENCE&search=go&limit=5&offset=10&startDate=2026-01-01T00:00:00Z", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp EventListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Events, 1)
		assert.Equal(t, 11, resp.Total)
		assert.Equal(t, 5, resp.Limit)
		svc.AssertExpectations(t)
	})

	t.Run("limitが整数でない場合は400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, ""), http.MethodGet, "/api/events?limit=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetAllEvents")
	})
}

func TestEventHandler_Update(t *testing.T) {
	t.Run("指定した項目だけが更新入力に入る", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("UpdateEvent", mock.Anything, "event-123", mock.MatchedBy(func(in application.UpdateEventInput) bool {
			return in.Title != nil && *in.Title == "新タイトル" &&
				in.Status != nil && *in.Status == event.StatusCancelled &&
				in.Description == nil && in.StartDate == nil
		}), "organizer-1").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123",
			`{"title":"新タイトル","status":"CANCELLED"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("定員にnullを指定すると定員なしに戻す", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("UpdateEvent", mock.Anything, "event-123", mock.MatchedBy(func(in application.UpdateEventInput) bool {
			return in.ClearCapacity && in.Capacity == nil
		}), "organizer-1").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123", `{"capacity":null}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("定員を省略した場合は変更しない", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("UpdateEvent", mock.Anything, "event-123", mock.MatchedBy(func(in application.UpdateEventInput) bool {
			return !in.ClearCapacity && in.Capacity == nil
		}), "organizer-1").Return(sampleEvent(), nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123", `{"title":"x"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("定員を参加人数未満にすると400", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("UpdateEvent", mock.Anything, "event-123", mock.MatchedBy(func(in application.UpdateEventInput) bool {
			return in.Capacity != nil && *in.Capacity == 1 && !in.ClearCapacity
		}), "organizer-1").Return(nil, event.ErrCapacityBelowAttendance)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123", `{"capacity":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("定員が数値でなければ400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123", `{"capacity":"many"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateEvent")
	})

	t.Run("主催者以外は403", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("UpdateEvent", mock.Anything, "event-123", mock.Anything, "other").Return(nil, event.ErrNotOrganizer)

		rec := serve(newEventEcho(svc, "other"), http.MethodPatch, "/api/events/event-123", `{"title":"x"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("不正なステータスは400", func(t *testing.T) {
		svc := new(MockEventService)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodPatch, "/api/events/event-123", `{"status":"UNKNOWN"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateEvent")
	})
}

func TestEventHandler_DeleteAndStats(t *testing.T) {
	t.Run("削除すると204", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("DeleteEvent", mock.Anything, "event-123", "organizer-1").Return(nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodDelete, "/api/events/event-123", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("集計値をstatsキーで返す", func(t *testing.T) {
		svc := new(MockEventService)
		svc.On("GetEventStats", mock.Anything, "event-123", "organizer-1").
			Return(&event.Stats{TotalRegistrations: 3, ConfirmedRegistrations: 2, TotalRevenue: 6000}, nil)

		rec := serve(newEventEcho(svc, "organizer-1"), http.MethodGet, "/api/events/event-123/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Stats event.Stats `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Stats.TotalRegistrations)
		assert.Equal(t, 6000, resp.Stats.TotalRevenue)
	})
}
