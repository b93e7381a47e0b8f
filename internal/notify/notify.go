// Package notify sends the operations email for newly created invoices.
package notify

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/money"
)

const (
	dashboardURL = "https://squareup.com/dashboard"

	errNotConfigured = "RESEND_API_KEY not configured"
	msgNotConfigured = "Email notifications are not configured. Please add RESEND_API_KEY to your environment variables."
	msgSendFailed    = "Failed to send notification email"
	msgSent          = "Notification email sent successfully"
)

//go:embed email.html
var emailTemplate string

var tmpl = template.Must(template.New("invoice-created").Parse(emailTemplate))

// EmailSender is the subset of the Resend emails service used here.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Customer struct {
	ID           string
	GivenName    string
	FamilyName   string
	EmailAddress string
	PhoneNumber  string
}

type InvoiceCreated struct {
	InvoiceID  string
	Title      string
	OrderID    string
	EventDate  string
	TotalCents *int64
	Customer   *Customer
}

// Result is embedded as-is in the submission response.
type Result struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

type Config struct {
	APIKey string
	From   string
	To     []string
}

type Notifier struct {
	sender EmailSender
	from   string
	to     []string
	now    func() time.Time
}

// New builds a notifier backed by Resend. Without an API key every
// notification is skipped.
func New(cfg Config) *Notifier {
	var sender EmailSender
	if cfg.APIKey != "" {
		sender = resend.NewClient(cfg.APIKey).Emails
	} else {
		log.Warn().Msg("notify: RESEND_API_KEY not found, email notifications will be skipped")
	}
	return NewWithSender(sender, cfg.From, cfg.To)
}

func NewWithSender(sender EmailSender, from string, to []string) *Notifier {
	return &Notifier{
		sender: sender,
		from:   from,
		to:     to,
		now:    time.Now,
	}
}

// NotifyInvoiceCreated never returns an error; failures are reported in the Result.
func (n *Notifier) NotifyInvoiceCreated(ctx context.Context, in InvoiceCreated) Result {
	if n.sender == nil {
		log.Info().Str("invoice_id", in.InvoiceID).Msg("notify: resend not configured, skipping email notification")
		return Result{Success: false, Skipped: true, Error: errNotConfigured, Message: msgNotConfigured}
	}

	name := customerName(in.Customer)
	html, err := n.render(in, name)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", in.InvoiceID).Msg("notify: failed to render email")
		return Result{Success: false, Error: err.Error(), Message: msgSendFailed}
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("New Catering Invoice: %s - %s", name, in.EventDate),
		Html:    html,
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", in.InvoiceID).Msg("notify: failed to send notification email")
		return Result{Success: false, Error: err.Error(), Message: msgSendFailed}
	}
	if sent == nil || sent.Id == "" {
		log.Error().Str("invoice_id", in.InvoiceID).Msg("notify: resend returned no message id")
		return Result{Success: false, Error: "resend returned no message id", Message: msgSendFailed}
	}

	log.Info().Str("invoice_id", in.InvoiceID).Str("email_id", sent.Id).Msg("notify: notification email sent")
	return Result{Success: true, EmailID: sent.Id, Message: msgSent}
}

type emailView struct {
	InvoiceID    string
	Title        string
	Total        string
	CustomerName string
	Email        string
	Phone        string
	CustomerID   string
	EventDate    string
	OrderID      string
	InvoiceURL   string
	CustomerURL  string
	OrderURL     string
	CreatedAt    string
}

func (n *Notifier) render(in InvoiceCreated, name string) (string, error) {
	view := emailView{
		InvoiceID:    in.InvoiceID,
		Title:        in.Title,
		Total:        "TBD",
		CustomerName: name,
		Email:        "Not provided",
		Phone:        "Not provided",
		CustomerID:   "N/A",
		EventDate:    in.EventDate,
		OrderID:      orDefault(in.OrderID, "N/A"),
		InvoiceURL:   dashboardURL + "/sales/invoices/" + in.InvoiceID,
		OrderURL:     dashboardURL + "/orders/" + in.OrderID,
		CreatedAt:    n.now().Format("1/2/2006, 3:04:05 PM MST"),
	}
	if in.TotalCents != nil && *in.TotalCents > 0 {
		view.Total = money.Format(*in.TotalCents)
	}

	customerID := ""
	if c := in.Customer; c != nil {
		view.Email = orDefault(c.EmailAddress, view.Email)
		view.Phone = orDefault(c.PhoneNumber, view.Phone)
		view.CustomerID = orDefault(c.ID, view.CustomerID)
		customerID = c.ID
	}
	view.CustomerURL = dashboardURL + "/customers/" + customerID

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("notify: failed to render template: %w", err)
	}
	return buf.String(), nil
}

func customerName(c *Customer) string {
	if c == nil {
		return "Guest Customer"
	}
	switch {
	case c.GivenName != "" && c.FamilyName != "":
		return c.GivenName + " " + c.FamilyName
	case c.GivenName != "":
		return c.GivenName
	case c.FamilyName != "":
		return c.FamilyName
	default:
		return "Guest Customer"
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
