package ticket

import "time"

// 在庫確認で販売不可となる理由
const (
	ReasonNotStarted = "販売開始前です"
	ReasonEnded      = "販売期間が終了しました"
	ReasonSoldOut    = "売り切れです"
)

// Ticket はイベントのチケット種別を表す
type Ticket struct {
	ID          string
	EventID     string
	Name        string
	Description string
	Price       int
	Quantity    *int // nil は無制限
	Sold        int
	SalesStart  *time.Time
	SalesEnd    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Availability はチケットの販売可否
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Remaining *int   `json:"remaining"` // nil は無制限
}

// NewTicket は新しいチケットを作成する
func NewTicket(eventID, name string, price int) *Ticket {
	now := time.Now()
	return &Ticket{
		EventID:   eventID,
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate はチケットの検証を行う
func (t *Ticket) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if t.Price < 0 {
		return ErrInvalidPrice
	}
	if t.Quantity != nil {
		if *t.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if *t.Quantity < t.Sold {
			return ErrQuantityBelowSold
		}
	}
	if t.SalesStart != nil && t.SalesEnd != nil && !t.SalesEnd.After(*t.SalesStart) {
		return ErrInvalidSalesPeriod
	}
	return nil
}

// Remaining は残数を返す。無制限の場合は nil
func (t *Ticket) Remaining() *int {
	if t.Quantity == nil {
		return nil
	}
	r := *t.Quantity - t.Sold
	return &r
}

// CheckAvailability は指定時刻における販売可否を判定する
func (t *Ticket) CheckAvailability(now time.Time) Availability {
	if t.SalesStart != nil && now.Before(*t.SalesStart) {
		return Availability{Available: false, Reason: ReasonNotStarted}
	}
	if t.SalesEnd != nil && now.After(*t.SalesEnd) {
		return Availability{Available: false, Reason: ReasonEnded}
	}
	remaining := t.Remaining()
	if remaining != nil && *remaining <= 0 {
		return Availability{Available: false, Reason: ReasonSoldOut, Remaining: remaining}
	}
	return Availability{Available: true, Remaining: remaining}
}

// TotalFor は指定人数分の合計金額を返す
func (t *Ticket) TotalFor(count int) int {
	return t.Price * count
}
