package registration

import "time"

// Status は参加登録のステータス
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Registration はイベントへの参加登録を表す
type Registration struct {
	ID              string
	EventID         string
	UserID          string
	TicketID        *string
	AttendeeCount   int
	AttendeeName    string
	AttendeeEmail   string
	PhoneNumber     string
	SpecialRequests string
	TotalAmount     int
	Status          Status
	CheckedIn       bool
	QRCode          string
	CancelledAt     *time.Time
	CheckedInAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRegistration は確定済みの参加登録を作成する。attendeeCount が0以下の場合は1になる
func NewRegistration(eventID, userID string, attendeeCount int) *Registration {
	if attendeeCount <= 0 {
		attendeeCount = 1
	}
	now := time.Now()
	return &Registration{
		EventID:       eventID,
		UserID:        userID,
		AttendeeCount: attendeeCount,
		Status:        StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOwnedBy は指定ユーザーの登録かを返す
func (r *Registration) IsOwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// IsCancelled はキャンセル済みかを返す
func (r *Registration) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanCancel はキャンセル可能かを検証する
func (r *Registration) CanCancel() error {
	if r.IsCancelled() {
		return ErrAlreadyCancelled
	}
	if r.CheckedIn {
		return ErrCannotCancelCheckedIn
	}
	return nil
}

// Cancel は登録をキャンセルする
func (r *Registration) Cancel(now time.Time) error {
	if err := r.CanCancel(); err != nil {
		return err
	}
	r.Status = StatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
	return nil
}

// CanCheckIn はチェックイン可能かを検証する
func (r *Registration) CanCheckIn() error {
	if r.IsCancelled() {
		return ErrCheckInCancelled
	}
	if r.CheckedIn {
		return ErrAlreadyCheckedIn
	}
	return nil
}

// CheckIn はチェックイン済みにする
func (r *Registration) CheckIn(now time.Time) error {
	if err := r.CanCheckIn(); err != nil {
		return err
	}
	r.CheckedIn = true
	r.CheckedInAt = &now
	r.UpdatedAt = now
	return nil
}
