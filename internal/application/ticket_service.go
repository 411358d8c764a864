package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	redisinfra "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/infrastructure/redis"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/logger"
)

const availabilityCacheTTL = 5 * time.Second

type TicketService struct {
	ticketRepo ticket.Repository
	eventRepo  event.Repository
	cache      redisinfra.AvailabilityCacheInterface
	now        func() time.Time
}

// NewTicketService は TicketService を作成する。cache は nil でもよい
func NewTicketService(tr ticket.Repository, er event.Repository, cache redisinfra.AvailabilityCacheInterface) *TicketService {
	return &TicketService{ticketRepo: tr, eventRepo: er, cache: cache, now: time.Now}
}

type CreateTicketInput struct {
	Name        string
	Description string
	Price       int
	Quantity    *int
	SalesStart  *time.Time
	SalesEnd    *time.Time
}

type UpdateTicketInput struct {
	Name          *string
	Description   *string
	Price         *int
	Quantity      *int
	ClearQuantity bool // true の場合は枚数無制限に戻す
	SalesStart    *time.Time
	SalesEnd      *time.Time
}

func (s *TicketService) CreateTicket(ctx context.Context, eventID string, input CreateTicketInput, userID string) (*ticket.Ticket, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsOrganizer(userID) {
		return nil, event.ErrNotOrganizer
	}

	t := ticket.NewTicket(eventID, input.Name, input.Price)
	t.Description = input.Description
	t.Quantity = input.Quantity
	t.SalesStart = input.SalesStart
	t.SalesEnd = input.SalesEnd
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) GetEventTickets(ctx context.Context, eventID string) ([]*ticket.Ticket, error) {
	return s.ticketRepo.GetByEventID(ctx, eventID)
}

func (s *TicketService) GetTicket(ctx context.Context, id string) (*ticket.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

func (s *TicketService) UpdateTicket(ctx context.Context, id string, input UpdateTicketInput, userID string) (*ticket.Ticket, error) {
	t, err := s.getOwnedTicket(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Price != nil {
		t.Price = *input.Price
	}
	if input.ClearQuantity {
		t.Quantity = nil
	} else if input.Quantity != nil {
		t.Quantity = input.Quantity
	}
	if input.SalesStart != nil {
		t.SalesStart = input.SalesStart
	}
	if input.SalesEnd != nil {
		t.SalesEnd = input.SalesEnd
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, t.ID)
	return t, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id, userID string) error {
	t, err := s.getOwnedTicket(ctx, id, userID)
	if err != nil {
		return err
	}
	hasRegs, err := s.ticketRepo.HasRegistrations(ctx, t.ID)
	if err != nil {
		return err
	}
	if hasRegs {
		return ticket.ErrHasRegistrations
	}
	if err := s.ticketRepo.Delete(ctx, t.ID); err != nil {
		return err
	}
	s.invalidate(ctx, t.ID)
	return nil
}

// CheckTicketAvailability はチケットの販売可否を返す。結果は短時間キャッシュされる
func (s *TicketService) CheckTicketAvailability(ctx context.Context, id string) (*ticket.Availability, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("在庫キャッシュの取得に失敗", zap.String("ticket_id", id), zap.Error(err))
		}
	}

	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a := t.CheckAvailability(s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, &a, availabilityCacheTTL); err != nil {
			logger.Warn("在庫キャッシュの保存に失敗", zap.String("ticket_id", id), zap.Error(err))
		}
	}
	return &a, nil
}

// IncrementTicketSold は在庫の範囲内で販売済み数を増やす
func (s *TicketService) IncrementTicketSold(ctx context.Context, id string, count int) error {
	if err := s.ticketRepo.IncrementSold(ctx, nil, id, count); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// DecrementTicketSold は販売済み数を減らす。0 未満にはならない
func (s *TicketService) DecrementTicketSold(ctx context.Context, id string, count int) error {
	if err := s.ticketRepo.DecrementSold(ctx, nil, id, count); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *TicketService) getOwnedTicket(ctx context.Context, id, userID string) (*ticket.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev, err := s.eventRepo.GetByID(ctx, t.EventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsOrganizer(userID) {
		return nil, event.ErrNotOrganizer
	}
	return t, nil
}

func (s *TicketService) invalidate(ctx context.Context, ticketID string) {
	invalidateAvailability(ctx, s.cache, ticketID)
}

// invalidateAvailability は在庫キャッシュを破棄する。失敗はログのみ
func invalidateAvailability(ctx context.Context, cache redisinfra.AvailabilityCacheInterface, ticketID string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ticketID); err != nil {
		logger.Warn("在庫キャッシュの無効化に失敗", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}
