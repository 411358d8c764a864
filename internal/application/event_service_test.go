package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
)

type eventDeps struct {
	txManager *MockTxManager
	tx        *MockTx
	eventRepo *MockEventRepository
	regRepo   *MockRegistrationRepository
	service   *EventService
}

func newEventDeps() *eventDeps {
	d := &eventDeps{
		txManager: new(MockTxManager),
		tx:        new(MockTx),
		eventRepo: new(MockEventRepository),
		regRepo:   new(MockRegistrationRepository),
	}
	d.service = NewEventService(d.txManager, d.eventRepo, d.regRepo)
	d.service.now = func() time.Time { return fixedNow }
	return d
}

func newEventService() (*EventService, *MockEventRepository) {
	d := newEventDeps()
	return d.service, d.eventRepo
}

func validCreateInput() CreateEventInput {
	return CreateEventInput{
		Title:     "Go Conference 2025",
		StartDate: fixedNow.Add(24 * time.Hour),
		EndDate:   fixedNow.Add(30 * time.Hour),
		Category:  event.CategoryConference,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("デフォルト値とスラッグを設定して作成する", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, "go-conference-2025").Return("", nil)
		repo.On("Create", ctx, mock.AnythingOfType("*event.Event")).Return(nil)

		e, err := svc.CreateEvent(ctx, validCreateInput(), "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, "go-conference-2025", e.Slug)
		assert.Equal(t, event.StatusDraft, e.Status)
		assert.Equal(t, event.VisibilityPublic, e.Visibility)
		assert.Equal(t, event.LocationPhysical, e.LocationType)
		assert.Equal(t, "organizer-1", e.OrganizerID)
		assert.Nil(t, e.PublishedAt)
		repo.AssertExpectations(t)
	})

	t.Run("スラッグが使用済みなら連番を付ける", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, "go-conference-2025").Return("other-1", nil)
		repo.On("FindIDBySlug", ctx, "go-conference-2025-1").Return("other-2", nil)
		repo.On("FindIDBySlug", ctx, "go-conference-2025-2").Return("", nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		e, err := svc.CreateEvent(ctx, validCreateInput(), "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, "go-conference-2025-2", e.Slug)
	})

	t.Run("公開状態で作成すると公開日時を記録する", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, mock.Anything).Return("", nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		input := validCreateInput()
		input.Status = event.StatusPublished
		e, err := svc.CreateEvent(ctx, input, "organizer-1")

		require.NoError(t, err)
		require.NotNil(t, e.PublishedAt)
		assert.Equal(t, fixedNow, *e.PublishedAt)
	})

	t.Run("同時作成でスラッグが衝突した場合は再採番する", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, "go-conference-2025").Return("", nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(event.ErrSlugTaken).Once()
		repo.On("FindIDBySlug", ctx, "go-conference-2025").Return("other", nil).Once()
		repo.On("FindIDBySlug", ctx, "go-conference-2025-1").Return("", nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		e, err := svc.CreateEvent(ctx, validCreateInput(), "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, "go-conference-2025-1", e.Slug)
	})

	t.Run("衝突が続く場合は3回で諦める", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, mock.Anything).Return("", nil)
		repo.On("Create", ctx, mock.Anything).Return(event.ErrSlugTaken)

		_, err := svc.CreateEvent(ctx, validCreateInput(), "organizer-1")

		assert.ErrorIs(t, err, event.ErrSlugTaken)
		repo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("バリデーションエラー", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(*CreateEventInput)
			want   error
		}{
			{name: "タイトルなし", modify: func(in *CreateEventInput) { in.Title = "" }, want: event.ErrTitleRequired},
			{name: "終了が開始より前", modify: func(in *CreateEventInput) { in.EndDate = in.StartDate.Add(-time.Hour) }, want: event.ErrInvalidEventTime},
			{name: "不正なカテゴリ", modify: func(in *CreateEventInput) { in.Category = "PARTY" }, want: event.ErrInvalidCategory},
			{name: "定員0", modify: func(in *CreateEventInput) { in.Capacity = intPtr(0) }, want: event.ErrInvalidCapacity},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, repo := newEventService()
				input := validCreateInput()
				tt.modify(&input)

				_, err := svc.CreateEvent(context.Background(), input, "organizer-1")

				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestEventService_EnsureUniqueSlug(t *testing.T) {
	t.Run("自分自身が使っているスラッグはそのまま使える", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, "my-event").Return("event-1", nil)

		slug, err := svc.EnsureUniqueSlug(ctx, "my-event", "event-1")

		require.NoError(t, err)
		assert.Equal(t, "my-event", slug)
	})

	t.Run("他のイベントが使っているスラッグは返さない", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("FindIDBySlug", ctx, "my-event").Return("event-2", nil)
		repo.On("FindIDBySlug", ctx, "my-event-1").Return("", nil)

		slug, err := svc.EnsureUniqueSlug(ctx, "my-event", "event-1")

		require.NoError(t, err)
		assert.Equal(t, "my-event-1", slug)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	existing := func() *event.Event {
		return &event.Event{
			ID:           "event-1",
			Slug:         "old-title",
			Title:        "Old Title",
			StartDate:    fixedNow.Add(24 * time.Hour),
			EndDate:      fixedNow.Add(30 * time.Hour),
			Category:     event.CategoryMeetup,
			Status:       event.StatusDraft,
			Visibility:   event.VisibilityPublic,
			LocationType: event.LocationPhysical,
			OrganizerID:  "organizer-1",
		}
	}

	t.Run("タイトル変更時はスラッグを再生成する", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(existing(), nil)
		repo.On("FindIDBySlug", ctx, "new-title").Return("", nil)
		repo.On("Update", ctx, nil, mock.Anything).Return(nil)

		e, err := svc.UpdateEvent(ctx, "event-1", UpdateEventInput{Title: strPtr("New Title")}, "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, "New Title", e.Title)
		assert.Equal(t, "new-title", e.Slug)
	})

	t.Run("タイトル以外の変更ではスラッグを変えない", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(existing(), nil)
		repo.On("Update", ctx, nil, mock.Anything).Return(nil)

		e, err := svc.UpdateEvent(ctx, "event-1", UpdateEventInput{City: strPtr("Tokyo")}, "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, "old-title", e.Slug)
		assert.Equal(t, "Tokyo", e.City)
		repo.AssertNotCalled(t, "FindIDBySlug", mock.Anything, mock.Anything)
	})

	t.Run("公開に変更すると公開日時を記録する", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(existing(), nil)
		repo.On("Update", ctx, nil, mock.Anything).Return(nil)
		published := event.StatusPublished

		e, err := svc.UpdateEvent(ctx, "event-1", UpdateEventInput{Status: &published}, "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, event.StatusPublished, e.Status)
		require.NotNil(t, e.PublishedAt)
	})

	t.Run("定員を参加人数未満にはできない", func(t *testing.T) {
		d := newEventDeps()
		ctx := context.Background()
		d.eventRepo.On("GetByID", ctx, "event-1").Return(existing(), nil)
		d.txManager.On("Begin", ctx).Return(d.tx, nil)
		d.tx.On("Rollback").Return(nil)
		d.eventRepo.On("GetByIDForUpdate", ctx, d.tx, "event-1").Return(existing(), nil)
		d.regRepo.On("SumActiveAttendees", ctx, d.tx, "event-1").Return(3, nil)

		_, err := d.service.UpdateEvent(ctx, "event-1", UpdateEventInput{Capacity: intPtr(2)}, "organizer-1")

		assert.ErrorIs(t, err, event.ErrCapacityBelowAttendance)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		d.eventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		d.tx.AssertNotCalled(t, "Commit")
	})

	t.Run("参加人数以上の定員はロック下で更新する", func(t *testing.T) {
		d := newEventDeps()
		ctx := context.Background()
		d.eventRepo.On("GetByID", ctx, "event-1").Return(existing(), nil)
		d.txManager.On("Begin", ctx).Return(d.tx, nil)
		d.tx.On("Commit").Return(nil)
		d.eventRepo.On("GetByIDForUpdate", ctx, d.tx, "event-1").Return(existing(), nil)
		d.regRepo.On("SumActiveAttendees", ctx, d.tx, "event-1").Return(3, nil)
		d.eventRepo.On("Update", ctx, d.tx, mock.AnythingOfType("*event.Event")).Return(nil)

		e, err := d.service.UpdateEvent(ctx, "event-1", UpdateEventInput{Capacity: intPtr(3)}, "organizer-1")

		require.NoError(t, err)
		require.NotNil(t, e.Capacity)
		assert.Equal(t, 3, *e.Capacity)
		d.eventRepo.AssertExpectations(t)
		d.tx.AssertExpectations(t)
	})

	t.Run("定員なしに戻す場合は参加人数を確認しない", func(t *testing.T) {
		d := newEventDeps()
		ctx := context.Background()
		limited := existing()
		limited.Capacity = intPtr(10)
		d.eventRepo.On("GetByID", ctx, "event-1").Return(limited, nil)
		d.eventRepo.On("Update", ctx, nil, mock.AnythingOfType("*event.Event")).Return(nil)

		e, err := d.service.UpdateEvent(ctx, "event-1", UpdateEventInput{ClearCapacity: true}, "organizer-1")

		require.NoError(t, err)
		assert.Nil(t, e.Capacity)
		d.regRepo.AssertNotCalled(t, "SumActiveAttendees", mock.Anything, mock.Anything, mock.Anything)
		d.txManager.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("主催者以外は更新できない", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(existing(), nil)

		_, err := svc.UpdateEvent(ctx, "event-1", UpdateEventInput{City: strPtr("Osaka")}, "someone")

		assert.ErrorIs(t, err, event.ErrNotOrganizer)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("存在しないイベントはNotFound", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "missing").Return(nil, event.ErrEventNotFound)

		_, err := svc.UpdateEvent(ctx, "missing", UpdateEventInput{}, "organizer-1")

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestEventService_GetAllEvents(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "省略時は50件", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "上限は100件", limit: 500, offset: 10, wantLimit: 100, wantOffset: 10},
		{name: "負のオフセットは0", limit: 20, offset: -5, wantLimit: 20, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newEventService()
			ctx := context.Background()
			repo.On("List", ctx, event.Filter{Category: event.CategoryMeetup, Limit: tt.wantLimit, Offset: tt.wantOffset}).
				Return([]*event.Event{{ID: "event-1"}}, 1, nil)

			result, err := svc.GetAllEvents(ctx, event.Filter{Category: event.CategoryMeetup, Limit: tt.limit, Offset: tt.offset})

			require.NoError(t, err)
			assert.Equal(t, 1, result.Total)
			assert.Equal(t, tt.wantLimit, result.Limit)
			assert.Equal(t, tt.wantOffset, result.Offset)
			assert.Len(t, result.Events, 1)
		})
	}
}

func TestEventService_DeleteAndStats(t *testing.T) {
	ev := &event.Event{ID: "event-1", OrganizerID: "organizer-1"}

	t.Run("主催者は削除できる", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(ev, nil)
		repo.On("Delete", ctx, "event-1").Return(nil)

		require.NoError(t, svc.DeleteEvent(ctx, "event-1", "organizer-1"))
		repo.AssertExpectations(t)
	})

	t.Run("主催者以外は統計を取得できない", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(ev, nil)

		_, err := svc.GetEventStats(ctx, "event-1", "user-1")

		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		repo.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
	})

	t.Run("主催者は統計を取得できる", func(t *testing.T) {
		svc, repo := newEventService()
		ctx := context.Background()
		repo.On("GetByID", ctx, "event-1").Return(ev, nil)
		repo.On("GetStats", ctx, "event-1").Return(&event.Stats{TotalRegistrations: 3, TotalRevenue: 9000}, nil)

		stats, err := svc.GetEventStats(ctx, "event-1", "organizer-1")

		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalRegistrations)
		assert.Equal(t, 9000, stats.TotalRevenue)
	})
}
