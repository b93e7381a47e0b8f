package catering

import (
	"time"

	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/notify"
)

type ContactInfo struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	CompanyName         string `json:"companyName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	EventDate           string `json:"eventDate"`
	Location            string `json:"location"`
	DeliveryMethod      string `json:"deliveryMethod"`
	Time                string `json:"time"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// HasIdentity reports whether any field usable for a customer record is set.
func (c ContactInfo) HasIdentity() bool {
	return c.FirstName != "" || c.LastName != "" || c.Email != "" || c.Phone != ""
}

// FullName joins first and last name, falling back to whichever is set.
func (c ContactInfo) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

type SubmissionRequest struct {
	Package            *catalog.Package  `json:"package"`
	GuestCount         int               `json:"guestCount"`
	Entrees            []catalog.Entree  `json:"entrees"`
	Sides              []catalog.Side    `json:"sides"`
	AdditionalServices []catalog.Service `json:"additionalServices"`
	TotalPrice         float64           `json:"totalPrice"`
	ContactInfo        ContactInfo       `json:"contactInfo"`
}

type EventDetails struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Location       string  `json:"location"`
	DeliveryMethod string  `json:"deliveryMethod"`
	GuestCount     int     `json:"guestCount"`
	CustomerName   *string `json:"customerName"`
}

type SubmissionResult struct {
	Success            bool           `json:"success"`
	OrderID            string         `json:"orderId"`
	InvoiceID          string         `json:"invoiceId"`
	CustomerID         *string        `json:"customerId"`
	FormIdempotencyKey string         `json:"formIdempotencyKey"`
	Message            string         `json:"message"`
	EventDetails       EventDetails   `json:"eventDetails"`
	SelectionSummary   string         `json:"selectionSummary"`
	InvoiceDescription string         `json:"invoiceDescription"`
	EmailNotification  *notify.Result `json:"emailNotification"`
	Duplicate          bool           `json:"duplicate,omitempty"`
}

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionCompleted SubmissionStatus = "COMPLETED"
)

// Submission is the dedup record kept per form idempotency key.
type Submission struct {
	Key       string
	Status    SubmissionStatus
	Result    []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DedupPolicy decides when an existing record stops blocking a new submission.
type DedupPolicy struct {
	// Window is how long a completed submission is replayed.
	Window time.Duration
	// PendingTimeout is how long an unfinished submission blocks retries.
	PendingTimeout time.Duration
}

func (p DedupPolicy) live(s *Submission, now time.Time) bool {
	switch s.Status {
	case SubmissionCompleted:
		return s.CreatedAt.After(now.Add(-p.Window))
	case SubmissionPending:
		return s.UpdatedAt.After(now.Add(-p.PendingTimeout))
	default:
		return false
	}
}
