package client

// Event はイベント
type Event struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Timezone         string   `json:"timezone"`
	LocationType     string   `json:"locationType"`
	Venue            string   `json:"venue"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	VirtualLink      string   `json:"virtualLink"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	Capacity         *int     `json:"capacity"`
	CoverImage       string   `json:"coverImage"`
	Status           string   `json:"status"`
	Visibility       string   `json:"visibility"`
	OrganizerID      string   `json:"organizerId"`
	PublishedAt      *string  `json:"publishedAt"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// EventList はイベント一覧
type EventList struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// EventQuery はイベント一覧の検索条件。ゼロ値の項目は送信しない
type EventQuery struct {
	Category    string
	Status      string
	City        string
	OrganizerID string
	Search      string
	Limit       int
	Offset      int
}

// CreateEventInput はイベント作成の入力
type CreateEventInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Timezone         string   `json:"timezone,omitempty"`
	LocationType     string   `json:"locationType,omitempty"`
	Venue            string   `json:"venue,omitempty"`
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	VirtualLink      string   `json:"virtualLink,omitempty"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
	Status           string   `json:"status,omitempty"`
	Visibility       string   `json:"visibility,omitempty"`
}

// EventStats はイベントの集計値
type EventStats struct {
	TotalRegistrations     int     `json:"totalRegistrations"`
	ConfirmedRegistrations int     `json:"confirmedRegistrations"`
	CancelledRegistrations int     `json:"cancelledRegistrations"`
	CheckedInCount         int     `json:"checkedInCount"`
	TotalRevenue           int     `json:"totalRevenue"`
	TicketsSold            int     `json:"ticketsSold"`
	AverageRating          float64 `json:"averageRating"`
}

// Ticket はチケット
type Ticket struct {
	ID          string  `json:"id"`
	EventID     string  `json:"eventId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Quantity    *int    `json:"quantity"`
	Sold        int     `json:"sold"`
	Remaining   *int    `json:"remaining"`
	SalesStart  *string `json:"salesStart"`
	SalesEnd    *string `json:"salesEnd"`
}

// CreateTicketInput はチケット作成の入力
type CreateTicketInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       int     `json:"price"`
	Quantity    *int    `json:"quantity,omitempty"`
	SalesStart  *string `json:"salesStart,omitempty"`
	SalesEnd    *string `json:"salesEnd,omitempty"`
}

// Availability はチケットの購入可否
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Remaining *int   `json:"remaining"`
}

// Registration は参加登録
type Registration struct {
	ID              string  `json:"id"`
	EventID         string  `json:"eventId"`
	UserID          string  `json:"userId"`
	TicketID        *string `json:"ticketId"`
	AttendeeCount   int     `json:"attendeeCount"`
	AttendeeName    string  `json:"attendeeName"`
	AttendeeEmail   string  `json:"attendeeEmail"`
	PhoneNumber     string  `json:"phoneNumber"`
	SpecialRequests string  `json:"specialRequests"`
	TotalAmount     int     `json:"totalAmount"`
	Status          string  `json:"status"`
	CheckedIn       bool    `json:"checkedIn"`
	QRCode          string  `json:"qrCode"`
	CancelledAt     *string `json:"cancelledAt"`
	CheckedInAt     *string `json:"checkedInAt"`
	CreatedAt       string  `json:"createdAt"`
}

// RegisterInput は参加登録の入力
type RegisterInput struct {
	TicketID        string `json:"ticketId,omitempty"`
	AttendeeCount   int    `json:"attendeeCount,omitempty"`
	AttendeeName    string `json:"attendeeName,omitempty"`
	AttendeeEmail   string `json:"attendeeEmail,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// CheckInResult はQRコードチェックインの結果
type CheckInResult struct {
	Success          bool         `json:"success"`
	AlreadyCheckedIn bool         `json:"alreadyCheckedIn"`
	Message          string       `json:"message"`
	Registration     Registration `json:"registration"`
}

// Review はレビュー
type Review struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// Rating はイベントの平均評価
type Rating struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// User はユーザー
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
