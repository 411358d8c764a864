package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
	redisinfra "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/infrastructure/redis"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/logger"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/metrics"
)

const (
	registrationLockTTL        = 10 * time.Second
	registrationLockRetries    = 3
	registrationLockRetryDelay = 100 * time.Millisecond
)

// 参加登録メトリクスの結果ラベル
const (
	resultSuccess    = "success"
	resultFull       = "full"
	resultDuplicate  = "duplicate"
	resultSoldOut    = "sold_out"
	resultLockFailed = "lock_failed"
	resultClosed     = "closed"
	resultError      = "error"
)

type RegistrationService struct {
	txManager        transaction.Manager
	registrationRepo registration.Repository
	eventRepo        event.Repository
	ticketRepo       ticket.Repository
	lockManager      redisinfra.LockManagerInterface
	cache            redisinfra.AvailabilityCacheInterface
	metrics          *metrics.Metrics
	generateQRCode   registration.QRCodeGenerator
	now              func() time.Time
}

// NewRegistrationService は RegistrationService を作成する
// lockManager と cache は Redis がない環境では nil を渡す
func NewRegistrationService(
	tm transaction.Manager,
	rr registration.Repository,
	er event.Repository,
	tr ticket.Repository,
	lm redisinfra.LockManagerInterface,
	cache redisinfra.AvailabilityCacheInterface,
	m *metrics.Metrics,
) *RegistrationService {
	return &RegistrationService{
		txManager:        tm,
		registrationRepo: rr,
		eventRepo:        er,
		ticketRepo:       tr,
		lockManager:      lm,
		cache:            cache,
		metrics:          m,
		generateQRCode:   registration.GenerateQRCode,
		now:              time.Now,
	}
}

type RegisterInput struct {
	TicketID        string
	AttendeeCount   int
	AttendeeName    string
	AttendeeEmail   string
	PhoneNumber     string
	SpecialRequests string
}

// CheckInResult はQRコードによるチェックインの結果
type CheckInResult struct {
	Success          bool
	AlreadyCheckedIn bool
	Message          string
	Registration     *registration.Registration
}

// RegisterForEvent はイベントに参加登録する
// 定員・重複・チケット在庫の確認と登録作成は、イベント行をロックした単一トランザクション内で行う
func (s *RegistrationService) RegisterForEvent(ctx context.Context, eventID, userID string, input RegisterInput) (*registration.Registration, error) {
	if input.AttendeeCount < 0 {
		s.metrics.RecordRegistration(resultError)
		return nil, registration.ErrInvalidAttendeeCount
	}

	// 分散ロック（Redis が使えない場合は DB のロックのみで続行）
	if s.lockManager != nil {
		start := time.Now()
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, redisinfra.EventRegistrationLockKey(eventID),
			registrationLockTTL, registrationLockRetries, registrationLockRetryDelay)
		s.metrics.ObserveLock("acquire", err == nil, time.Since(start))
		switch {
		case err == nil:
			defer func() {
				if rErr := lock.Release(context.WithoutCancel(ctx)); rErr != nil && !errors.Is(rErr, redisinfra.ErrLockNotOwned) {
					logger.Warn("ロック解放に失敗", zap.String("event_id", eventID), zap.Error(rErr))
				}
			}()
		case errors.Is(err, redisinfra.ErrLockNotAcquired):
			s.metrics.RecordRegistration(resultLockFailed)
			return nil, registration.ErrRegistrationBusy
		default:
			logger.Warn("分散ロックを利用できないため DB ロックのみで続行", zap.String("event_id", eventID), zap.Error(err))
		}
	}

	reg := registration.NewRegistration(eventID, userID, input.AttendeeCount)
	reg.AttendeeName = input.AttendeeName
	reg.AttendeeEmail = input.AttendeeEmail
	reg.PhoneNumber = input.PhoneNumber
	reg.SpecialRequests = input.SpecialRequests

	err := transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !ev.IsOpenForRegistration() {
			return event.ErrNotOpenForRegistration
		}

		if ev.Capacity != nil {
			current, err := s.registrationRepo.SumActiveAttendees(ctx, tx, eventID)
			if err != nil {
				return fmt.Errorf("参加人数の集計に失敗: %w", err)
			}
			if !ev.HasCapacityFor(current, reg.AttendeeCount) {
				return event.ErrEventFull
			}
		}

		if _, err := s.registrationRepo.GetActiveByEventAndUser(ctx, tx, eventID, userID); err == nil {
			return registration.ErrAlreadyRegistered
		} else if !errors.Is(err, registration.ErrRegistrationNotFound) {
			return fmt.Errorf("既存登録の確認に失敗: %w", err)
		}

		if input.TicketID != "" {
			t, err := s.ticketRepo.GetByIDForUpdate(ctx, tx, input.TicketID)
			if err != nil {
				return err
			}
			if t.EventID != eventID {
				return ticket.ErrTicketNotForEvent
			}
			if a := t.CheckAvailability(s.now()); !a.Available {
				return ticket.UnavailableError(a.Reason)
			}
			if err := s.ticketRepo.IncrementSold(ctx, tx, t.ID, reg.AttendeeCount); err != nil {
				return err
			}
			ticketID := t.ID
			reg.TicketID = &ticketID
			reg.TotalAmount = t.TotalFor(reg.AttendeeCount)
		}

		qrCode, err := s.uniqueQRCode(ctx, tx)
		if err != nil {
			return err
		}
		reg.QRCode = qrCode

		return s.registrationRepo.Create(ctx, tx, reg)
	})
	if err != nil {
		s.metrics.RecordRegistration(registrationResult(err))
		return nil, err
	}

	if reg.TicketID != nil {
		invalidateAvailability(ctx, s.cache, *reg.TicketID)
	}
	s.metrics.RecordRegistration(resultSuccess)
	return reg, nil
}

// uniqueQRCode は未使用のQRコードを生成する
func (s *RegistrationService) uniqueQRCode(ctx context.Context, tx transaction.Tx) (string, error) {
	for i := 0; i < registration.QRCodeMaxAttempts; i++ {
		code, err := s.generateQRCode()
		if err != nil {
			return "", fmt.Errorf("QRコード生成に失敗: %w", err)
		}
		exists, err := s.registrationRepo.ExistsByQRCode(ctx, tx, code)
		if err != nil {
			return "", fmt.Errorf("QRコードの重複確認に失敗: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", registration.ErrQRCodeGeneration
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, event.ErrEventFull):
		return resultFull
	case errors.Is(err, registration.ErrAlreadyRegistered), errors.Is(err, registration.ErrDuplicateRegistration):
		return resultDuplicate
	case errors.Is(err, ticket.ErrNotEnoughTickets), errors.Is(err, ticket.ErrSoldOut):
		return resultSoldOut
	case errors.Is(err, event.ErrNotOpenForRegistration):
		return resultClosed
	}
	return resultError
}

func (s *RegistrationService) GetRegistration(ctx context.Context, id string) (*registration.Registration, error) {
	return s.registrationRepo.GetByID(ctx, id)
}

func (s *RegistrationService) GetUserRegistrations(ctx context.Context, userID string) ([]*registration.Registration, error) {
	return s.registrationRepo.ListByUser(ctx, userID)
}

// GetEventRegistrations はイベントの参加登録一覧を返す。主催者のみ
func (s *RegistrationService) GetEventRegistrations(ctx context.Context, eventID, userID string) ([]*registration.Registration, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsOrganizer(userID) {
		return nil, event.ErrNotOrganizer
	}
	return s.registrationRepo.ListByEvent(ctx, eventID)
}

// CancelRegistration は参加登録をキャンセルし、チケットの販売済み数を戻す
func (s *RegistrationService) CancelRegistration(ctx context.Context, id, userID string) (*registration.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reg.IsOwnedBy(userID) {
		return nil, registration.ErrNotOwner
	}
	if reg.IsCancelled() {
		return nil, registration.ErrAlreadyCancelled
	}

	ev, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if ev.HasEnded(now) {
		return nil, registration.ErrCannotCancelPast
	}
	if err := reg.Cancel(now); err != nil {
		return nil, err
	}

	err = transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		// 参加登録と同じ順序でイベント行をロックする
		if _, err := s.eventRepo.GetByIDForUpdate(ctx, tx, reg.EventID); err != nil {
			return err
		}
		if err := s.registrationRepo.MarkCancelled(ctx, tx, reg); err != nil {
			return err
		}
		if reg.TicketID != nil {
			return s.ticketRepo.DecrementSold(ctx, tx, *reg.TicketID, reg.AttendeeCount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reg.TicketID != nil {
		invalidateAvailability(ctx, s.cache, *reg.TicketID)
	}
	return reg, nil
}

// CheckInAttendee は参加登録IDでチェックインする。主催者のみ
func (s *RegistrationService) CheckInAttendee(ctx context.Context, id, organizerID string) (*registration.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOrganizer(ctx, reg.EventID, organizerID); err != nil {
		s.metrics.RecordCheckIn("id", resultError)
		return nil, err
	}
	if err := reg.CheckIn(s.now()); err != nil {
		s.metrics.RecordCheckIn("id", checkInResult(err))
		return nil, err
	}
	if err := s.registrationRepo.MarkCheckedIn(ctx, reg); err != nil {
		s.metrics.RecordCheckIn("id", checkInResult(err))
		return nil, err
	}
	s.metrics.RecordCheckIn("id", resultSuccess)
	return reg, nil
}

// CheckInByQRCode はQRコードでチェックインする
// 既にチェックイン済みの場合はエラーにせず、その旨を結果で返す
func (s *RegistrationService) CheckInByQRCode(ctx context.Context, qrCode, organizerID string) (*CheckInResult, error) {
	reg, err := s.registrationRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		s.metrics.RecordCheckIn("qr", resultError)
		return nil, err
	}
	if err := s.ensureOrganizer(ctx, reg.EventID, organizerID); err != nil {
		s.metrics.RecordCheckIn("qr", resultError)
		return nil, err
	}
	if reg.IsCancelled() {
		s.metrics.RecordCheckIn("qr", "cancelled")
		return nil, registration.ErrCheckInCancelled
	}
	if reg.CheckedIn {
		s.metrics.RecordCheckIn("qr", "already_checked_in")
		return alreadyCheckedIn(reg), nil
	}

	if err := reg.CheckIn(s.now()); err != nil {
		return nil, err
	}
	if err := s.registrationRepo.MarkCheckedIn(ctx, reg); err != nil {
		if !errors.Is(err, registration.ErrAlreadyCheckedIn) {
			s.metrics.RecordCheckIn("qr", checkInResult(err))
			return nil, err
		}
		// 同時チェックインに負けた場合は最新の状態を返す
		latest, getErr := s.registrationRepo.GetByID(ctx, reg.ID)
		if getErr != nil {
			return nil, getErr
		}
		if latest.IsCancelled() {
			s.metrics.RecordCheckIn("qr", "cancelled")
			return nil, registration.ErrCheckInCancelled
		}
		s.metrics.RecordCheckIn("qr", "already_checked_in")
		return alreadyCheckedIn(latest), nil
	}

	s.metrics.RecordCheckIn("qr", resultSuccess)
	return &CheckInResult{
		Success:      true,
		Message:      "チェックインしました",
		Registration: reg,
	}, nil
}

func alreadyCheckedIn(reg *registration.Registration) *CheckInResult {
	return &CheckInResult{
		Success:          true,
		AlreadyCheckedIn: true,
		Message:          "参加者は既にチェックイン済みです",
		Registration:     reg,
	}
}

func checkInResult(err error) string {
	switch {
	case errors.Is(err, registration.ErrAlreadyCheckedIn):
		return "already_checked_in"
	case errors.Is(err, registration.ErrCheckInCancelled):
		return "cancelled"
	}
	return resultError
}

func (s *RegistrationService) ensureOrganizer(ctx context.Context, eventID, userID string) error {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !ev.IsOrganizer(userID) {
		return event.ErrNotOrganizer
	}
	return nil
}
