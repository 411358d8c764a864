package handler

import (
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/review"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/user"
)

// EventResponse はイベントのレスポンス
type EventResponse struct {
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
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
	PostalCode       string   `json:"postalCode"`
	VirtualLink      string   `json:"virtualLink"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	Capacity         *int     `json:"capacity"`
	CoverImage       string   `json:"coverImage"`
	Images           []string `json:"images"`
	Status           string   `json:"status"`
	Visibility       string   `json:"visibility"`
	OrganizerID      string   `json:"organizerId"`
	PublishedAt      *string  `json:"publishedAt"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func toEventResponse(e *event.Event) EventResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	images := e.Images
	if images == nil {
		images = []string{}
	}
	return EventResponse{
		ID:               e.ID,
		Slug:             e.Slug,
		Title:            e.Title,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		StartDate:        formatTime(e.StartDate),
		EndDate:          formatTime(e.EndDate),
		Timezone:         e.Timezone,
		LocationType:     string(e.LocationType),
		Venue:            e.Venue,
		Address:          e.Address,
		City:             e.City,
		State:            e.State,
		Country:          e.Country,
		PostalCode:       e.PostalCode,
		VirtualLink:      e.VirtualLink,
		Category:         string(e.Category),
		Tags:             tags,
		Capacity:         e.Capacity,
		CoverImage:       e.CoverImage,
		Images:           images,
		Status:           string(e.Status),
		Visibility:       string(e.Visibility),
		OrganizerID:      e.OrganizerID,
		PublishedAt:      formatOptionalTime(e.PublishedAt),
		CreatedAt:        formatTime(e.CreatedAt),
		UpdatedAt:        formatTime(e.UpdatedAt),
	}
}

func toEventResponses(events []*event.Event) []EventResponse {
	res := make([]EventResponse, len(events))
	for i, e := range events {
		res[i] = toEventResponse(e)
	}
	return res
}

// TicketResponse はチケットのレスポンス
type TicketResponse struct {
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
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toTicketResponse(t *ticket.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		EventID:     t.EventID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price,
		Quantity:    t.Quantity,
		Sold:        t.Sold,
		Remaining:   t.Remaining(),
		SalesStart:  formatOptionalTime(t.SalesStart),
		SalesEnd:    formatOptionalTime(t.SalesEnd),
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

// RegistrationResponse は参加登録のレスポンス
type RegistrationResponse struct {
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
	UpdatedAt       string  `json:"updatedAt"`
}

func toRegistrationResponse(r *registration.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:              r.ID,
		EventID:         r.EventID,
		UserID:          r.UserID,
		TicketID:        r.TicketID,
		AttendeeCount:   r.AttendeeCount,
		AttendeeName:    r.AttendeeName,
		AttendeeEmail:   r.AttendeeEmail,
		PhoneNumber:     r.PhoneNumber,
		SpecialRequests: r.SpecialRequests,
		TotalAmount:     r.TotalAmount,
		Status:          string(r.Status),
		CheckedIn:       r.CheckedIn,
		QRCode:          r.QRCode,
		CancelledAt:     formatOptionalTime(r.CancelledAt),
		CheckedInAt:     formatOptionalTime(r.CheckedInAt),
		CreatedAt:       formatTime(r.CreatedAt),
		UpdatedAt:       formatTime(r.UpdatedAt),
	}
}

func toRegistrationResponses(regs []*registration.Registration) []RegistrationResponse {
	res := make([]RegistrationResponse, len(regs))
	for i, r := range regs {
		res[i] = toRegistrationResponse(r)
	}
	return res
}

// ReviewResponse はレビューのレスポンス
type ReviewResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func toReviewResponses(reviews []*review.Review) []ReviewResponse {
	res := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		res[i] = toReviewResponse(r)
	}
	return res
}

// UserResponse はユーザーのレスポンス
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
}

// toUserResponse は本人以外にはメールアドレスを返さない
func toUserResponse(u *user.User, self bool) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Image:     u.Image,
		CreatedAt: formatTime(u.CreatedAt),
	}
	if self {
		res.Email = u.Email
	}
	return res
}

// PostResponse は投稿のレスポンス
type PostResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	AuthorID  string `json:"authorId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toPostResponse(p *post.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func toPostResponses(posts []*post.Post) []PostResponse {
	res := make([]PostResponse, len(posts))
	for i, p := range posts {
		res[i] = toPostResponse(p)
	}
	return res
}
