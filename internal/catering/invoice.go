package catering

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

const (
	dateLayout     = "2006-01-02"
	longDateLayout = "Monday, January 2, 2006"

	paymentTermDays = 30
)

var reminderDays = []int{3, 7, 14, 21}

type InvoiceAPI interface {
	CreateInvoice(ctx context.Context, in square.CreateInvoiceRequest) (*square.Invoice, error)
}

// LongDate renders a YYYY-MM-DD date as "Monday, January 2, 2006". Empty
// input yields "TBD"; unparsable input is returned unchanged.
func LongDate(date string) string {
	if date == "" {
		return "TBD"
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(longDateLayout)
}

func serviceDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format(dateLayout)
}

func InvoiceTitle(c ContactInfo) string {
	return fmt.Sprintf("Catering Invoice - %s - %s at %s",
		orDefault(c.FullName(), "Guest"), LongDate(c.EventDate), orDefault(c.Location, "TBD"))
}

// BuildInvoice assembles a draft invoice for an order. The balance is due
// 30 days after now.
func BuildInvoice(locationID, orderID, customerID string, c ContactInfo, summary string, now time.Time) square.Invoice {
	reminders := make([]square.InvoicePaymentReminder, 0, len(reminderDays))
	for _, d := range reminderDays {
		reminders = append(reminders, square.InvoicePaymentReminder{
			RelativeScheduledDays: d,
			Message:               "Your catering invoice has a balance due.",
		})
	}

	inv := square.Invoice{
		LocationID: locationID,
		OrderID:    orderID,
		Title:      InvoiceTitle(c),
		PaymentRequests: []square.InvoicePaymentRequest{{
			RequestType: "BALANCE",
			DueDate:     now.UTC().AddDate(0, 0, paymentTermDays).Format(dateLayout),
			Reminders:   reminders,
		}},
		DeliveryMethod:         "EMAIL",
		AcceptedPaymentMethods: &square.AcceptedPaymentMethods{Card: true},
		Description:            summary,
		SaleOrServiceDate:      serviceDate(c.EventDate),
	}
	if customerID != "" {
		inv.PrimaryRecipient = &square.InvoiceRecipient{CustomerID: customerID}
	}
	return inv
}

type InvoiceBuilder struct {
	api        InvoiceAPI
	locationID string
	newKey     func() string
	now        func() time.Time
}

func NewInvoiceBuilder(api InvoiceAPI, locationID string, newKey func() string, now func() time.Time) *InvoiceBuilder {
	return &InvoiceBuilder{api: api, locationID: locationID, newKey: newKey, now: now}
}

func (b *InvoiceBuilder) Create(ctx context.Context, orderID, customerID string, c ContactInfo, summary string) (*square.Invoice, error) {
	req := square.CreateInvoiceRequest{
		IdempotencyKey: b.newKey(),
		Invoice:        BuildInvoice(b.locationID, orderID, customerID, c, summary, b.now()),
	}

	inv, err := b.api.CreateInvoice(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("service: failed to create invoice")
		return nil, err
	}

	log.Info().Str("invoice_id", inv.ID).Str("order_id", orderID).Msg("service: invoice created")
	return inv, nil
}
