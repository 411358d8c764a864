package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

const (
	defaultEventListLimit = 50
	maxEventListLimit     = 100
	maxSlugAttempts       = 1000
	maxCreateAttempts     = 3
)

type EventService struct {
	txManager        transaction.Manager
	eventRepo        event.Repository
	registrationRepo registration.Repository
	now              func() time.Time
}

func NewEventService(tm transaction.Manager, eventRepo event.Repository, registrationRepo registration.Repository) *EventService {
	return &EventService{
		txManager:        tm,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		now:              time.Now,
	}
}

type CreateEventInput struct {
	Title            string
	Description      string
	ShortDescription string
	StartDate        time.Time
	EndDate          time.Time
	Timezone         string
	LocationType     event.LocationType
	Venue            string
	Address          string
	City             string
	State            string
	Country          string
	PostalCode       string
	VirtualLink      string
	Category         event.Category
	Tags             []string
	Capacity         *int
	CoverImage       string
	Images           []string
	Status           event.Status
	Visibility       event.Visibility
}

// UpdateEventInput は部分更新の入力。nil のフィールドは変更しない
type UpdateEventInput struct {
	Title            *string
	Description      *string
	ShortDescription *string
	StartDate        *time.Time
	EndDate          *time.Time
	Timezone         *string
	LocationType     *event.LocationType
	Venue            *string
	Address          *string
	City             *string
	State            *string
	Country          *string
	PostalCode       *string
	VirtualLink      *string
	Category         *event.Category
	Tags             []string
	Capacity         *int
	ClearCapacity    bool // true の場合は定員なしに戻す
	CoverImage       *string
	Images           []string
	Status           *event.Status
	Visibility       *event.Visibility
}

// EventList はイベント一覧の結果
type EventList struct {
	Events []*event.Event
	Total  int
	Limit  int
	Offset int
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput, organizerID string) (*event.Event, error) {
	e := event.NewEvent(input.Title, input.StartDate, input.EndDate, input.Category, organizerID)
	e.Description = input.Description
	e.ShortDescription = input.ShortDescription
	e.Venue = input.Venue
	e.Address = input.Address
	e.City = input.City
	e.State = input.State
	e.Country = input.Country
	e.PostalCode = input.PostalCode
	e.VirtualLink = input.VirtualLink
	e.Capacity = input.Capacity
	e.CoverImage = input.CoverImage
	if input.Timezone != "" {
		e.Timezone = input.Timezone
	}
	if input.LocationType != "" {
		e.LocationType = input.LocationType
	}
	if input.Tags != nil {
		e.Tags = input.Tags
	}
	if input.Images != nil {
		e.Images = input.Images
	}
	if input.Visibility != "" {
		e.Visibility = input.Visibility
	}
	if input.Status != "" {
		e.ChangeStatus(input.Status, s.now())
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}

	base := event.GenerateSlug(e.Title)
	// 同時作成でスラッグが衝突した場合は採番し直す
	for attempt := 1; ; attempt++ {
		slug, err := s.EnsureUniqueSlug(ctx, base, "")
		if err != nil {
			return nil, err
		}
		e.Slug = slug
		err = s.eventRepo.Create(ctx, e)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, event.ErrSlugTaken) || attempt >= maxCreateAttempts {
			return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
		}
	}
}

// EnsureUniqueSlug は base が他のイベントに使われていれば "-1", "-2", ... を付けて未使用のスラッグを返す
// excludeID のイベント自身が使っているスラッグは使用可能とみなす
func (s *EventService) EnsureUniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	slug := base
	for counter := 1; counter <= maxSlugAttempts; counter++ {
		ownerID, err := s.eventRepo.FindIDBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if ownerID == "" || ownerID == excludeID {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(counter)
	}
	return "", apperror.Internal("一意なスラッグを生成できませんでした")
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*event.Event, error) {
	return s.eventRepo.GetBySlug(ctx, slug)
}

// GetAllEvents は条件に一致するイベントを開始日時の昇順で返す
func (s *EventService) GetAllEvents(ctx context.Context, filter event.Filter) (*EventList, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultEventListLimit
	}
	if filter.Limit > maxEventListLimit {
		filter.Limit = maxEventListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &EventList{Events: events, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, input UpdateEventInput, userID string) (*event.Event, error) {
	e, err := s.getOwnedEvent(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	titleChanged := input.Title != nil && *input.Title != e.Title
	applyEventUpdate(e, input)
	if input.Status != nil {
		e.ChangeStatus(*input.Status, s.now())
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}

	if titleChanged {
		slug, err := s.EnsureUniqueSlug(ctx, event.GenerateSlug(e.Title), e.ID)
		if err != nil {
			return nil, err
		}
		e.Slug = slug
	}

	if input.Capacity == nil || input.ClearCapacity {
		if err := s.eventRepo.Update(ctx, nil, e); err != nil {
			return nil, err
		}
		return e, nil
	}

	// 参加登録と同じ行ロックの下で現在の参加人数を確認する
	err = transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		if _, err := s.eventRepo.GetByIDForUpdate(ctx, tx, e.ID); err != nil {
			return err
		}
		attendees, err := s.registrationRepo.SumActiveAttendees(ctx, tx, e.ID)
		if err != nil {
			return err
		}
		if *e.Capacity < attendees {
			return event.ErrCapacityBelowAttendance
		}
		return s.eventRepo.Update(ctx, tx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func applyEventUpdate(e *event.Event, in UpdateEventInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&e.Title, in.Title)
	setString(&e.Description, in.Description)
	setString(&e.ShortDescription, in.ShortDescription)
	setString(&e.Timezone, in.Timezone)
	setString(&e.Venue, in.Venue)
	setString(&e.Address, in.Address)
	setString(&e.City, in.City)
	setString(&e.State, in.State)
	setString(&e.Country, in.Country)
	setString(&e.PostalCode, in.PostalCode)
	setString(&e.VirtualLink, in.VirtualLink)
	setString(&e.CoverImage, in.CoverImage)
	if in.StartDate != nil {
		e.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		e.EndDate = *in.EndDate
	}
	if in.LocationType != nil {
		e.LocationType = *in.LocationType
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Visibility != nil {
		e.Visibility = *in.Visibility
	}
	if in.ClearCapacity {
		e.Capacity = nil
	} else if in.Capacity != nil {
		e.Capacity = in.Capacity
	}
	if in.Tags != nil {
		e.Tags = in.Tags
	}
	if in.Images != nil {
		e.Images = in.Images
	}
}

func (s *EventService) DeleteEvent(ctx context.Context, id, userID string) error {
	if _, err := s.getOwnedEvent(ctx, id, userID); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *EventService) GetEventStats(ctx context.Context, id, userID string) (*event.Stats, error) {
	if _, err := s.getOwnedEvent(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetStats(ctx, id)
}

// CompletePastEvents は終了日時を過ぎた公開中イベントを完了にする
func (s *EventService) CompletePastEvents(ctx context.Context, now time.Time) (int64, error) {
	return s.eventRepo.CompletePast(ctx, now)
}

// getOwnedEvent はイベントを取得し、userID が主催者であることを確認する
func (s *EventService) getOwnedEvent(ctx context.Context, id, userID string) (*event.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsOrganizer(userID) {
		return nil, event.ErrNotOrganizer
	}
	return e, nil
}
