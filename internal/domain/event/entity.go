package event

import "time"

// Status はイベントの公開状態を表す
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Visibility はイベントの可視性を表す
type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityPrivate  Visibility = "PRIVATE"
	VisibilityUnlisted Visibility = "UNLISTED"
)

// LocationType は開催形態を表す
type LocationType string

const (
	LocationPhysical LocationType = "PHYSICAL"
	LocationVirtual  LocationType = "VIRTUAL"
	LocationHybrid   LocationType = "HYBRID"
)

// Category はイベントのカテゴリ
type Category string

const (
	CategoryConference Category = "CONFERENCE"
	CategoryWorkshop   Category = "WORKSHOP"
	CategorySeminar    Category = "SEMINAR"
	CategoryMeetup     Category = "MEETUP"
	CategoryConcert    Category = "CONCERT"
	CategoryFestival   Category = "FESTIVAL"
	CategorySports     Category = "SPORTS"
	CategoryExhibition Category = "EXHIBITION"
	CategoryNetworking Category = "NETWORKING"
	CategoryOther      Category = "OTHER"
)

var validCategories = map[Category]bool{
	CategoryConference: true, CategoryWorkshop: true, CategorySeminar: true,
	CategoryMeetup: true, CategoryConcert: true, CategoryFestival: true,
	CategorySports: true, CategoryExhibition: true, CategoryNetworking: true,
	CategoryOther: true,
}

// IsValid はカテゴリが定義済みかを返す
func (c Category) IsValid() bool { return validCategories[c] }

// IsValid はステータスが定義済みかを返す
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsValid は可視性が定義済みかを返す
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}

// IsValid は開催形態が定義済みかを返す
func (l LocationType) IsValid() bool {
	switch l {
	case LocationPhysical, LocationVirtual, LocationHybrid:
		return true
	}
	return false
}

// Event はイベントエンティティを表す
type Event struct {
	ID               string
	Slug             string
	Title            string
	Description      string
	ShortDescription string
	StartDate        time.Time
	EndDate          time.Time
	Timezone         string
	LocationType     LocationType
	Venue            string
	Address          string
	City             string
	State            string
	Country          string
	PostalCode       string
	VirtualLink      string
	Category         Category
	Tags             []string
	Capacity         *int // nil は定員なし
	CoverImage       string
	Images           []string
	Status           Status
	Visibility       Visibility
	OrganizerID      string
	PublishedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEvent は新しいイベントを下書き状態で作成する
func NewEvent(title string, startDate, endDate time.Time, category Category, organizerID string) *Event {
	now := time.Now()
	return &Event{
		Title:        title,
		StartDate:    startDate,
		EndDate:      endDate,
		Timezone:     "UTC",
		LocationType: LocationPhysical,
		Category:     category,
		Tags:         []string{},
		Images:       []string{},
		Status:       StatusDraft,
		Visibility:   VisibilityPublic,
		OrganizerID:  organizerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.Title == "" {
		return ErrTitleRequired
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return ErrDatesRequired
	}
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidEventTime
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !e.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !e.Visibility.IsValid() {
		return ErrInvalidVisibility
	}
	if !e.LocationType.IsValid() {
		return ErrInvalidLocationType
	}
	if e.Capacity != nil && *e.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// IsOrganizer は指定ユーザーが主催者かを返す
func (e *Event) IsOrganizer(userID string) bool {
	return userID != "" && e.OrganizerID == userID
}

// IsOpenForRegistration は参加登録を受け付けているかを返す
func (e *Event) IsOpenForRegistration() bool {
	return e.Status == StatusPublished
}

// HasEnded はイベントが終了済みかを返す
func (e *Event) HasEnded(now time.Time) bool {
	return e.EndDate.Before(now)
}

// HasCapacityFor は現在の参加人数に requested 人を追加できるかを返す
func (e *Event) HasCapacityFor(current, requested int) bool {
	if e.Capacity == nil {
		return true
	}
	return current+requested <= *e.Capacity
}

// ChangeStatus はステータスを変更し、公開時は公開日時を記録する
func (e *Event) ChangeStatus(status Status, now time.Time) {
	if status == StatusPublished && e.Status != StatusPublished {
		e.PublishedAt = &now
	}
	e.Status = status
}
