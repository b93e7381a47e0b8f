package catering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/notify"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

const successMessage = "Draft invoice created successfully with comprehensive event details"

var (
	ErrSubmissionInProgress = errors.New("an identical submission is already being processed")
	ErrOrderNotCreated      = errors.New("failed to create order")
	ErrInvoiceNotCreated    = errors.New("failed to create invoice")
)

// State is a step of the submission workflow.
type State string

const (
	StateStart              State = "start"
	StateCustomerResolved   State = "customer_resolved"
	StateOrderCreated       State = "order_created"
	StateInvoiceCreated     State = "invoice_created"
	StateNotified           State = "notified"
	StateNotificationFailed State = "notification_failed"
	StateResponded          State = "responded"
	StateOrderFailed        State = "order_failed"
	StateInvoiceFailed      State = "invoice_failed"
)

// SubmissionError is returned when the workflow stops in a terminal failure
// state. OrderID is set when an order was created before the failure; that
// order is left in place.
type SubmissionError struct {
	State   State
	OrderID string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type Platform interface {
	CustomerAPI
	OrderAPI
	InvoiceAPI
}

type Notifier interface {
	NotifyInvoiceCreated(ctx context.Context, in notify.InvoiceCreated) notify.Result
}

type SubmissionStore interface {
	// Reserve claims key. When a live record already exists it is returned
	// and nothing is claimed.
	Reserve(ctx context.Context, key string, now time.Time) (*Submission, error)
	Complete(ctx context.Context, key string, result []byte, now time.Time) error
	Release(ctx context.Context, key string) error
}

type Service interface {
	Submit(ctx context.Context, req SubmissionRequest) (*SubmissionResult, error)
}

type Options struct {
	LocationID string
	Catalog    *catalog.Catalog
	Now        func() time.Time
	NewKey     func() string
}

type service struct {
	customers *CustomerResolver
	orders    *OrderBuilder
	invoices  *InvoiceBuilder
	notifier  Notifier
	store     SubmissionStore
	catalog   *catalog.Catalog
	now       func() time.Time
}

func NewService(platform Platform, notifier Notifier, store SubmissionStore, opts Options) Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newKey := opts.NewKey
	if newKey == nil {
		newKey = func() string { return uuid.Must(uuid.NewV4()).String() }
	}

	return &service{
		customers: NewCustomerResolver(platform, newKey, now),
		orders:    NewOrderBuilder(platform, opts.LocationID, newKey, now),
		invoices:  NewInvoiceBuilder(platform, opts.LocationID, newKey, now),
		notifier:  notifier,
		store:     store,
		catalog:   opts.Catalog,
		now:       now,
	}
}

// Submit runs the whole workflow once it has started, even if ctx is
// cancelled; each platform call stays bounded by the client timeout.
func (s *service) Submit(ctx context.Context, req SubmissionRequest) (*SubmissionResult, error) {
	ctx = context.WithoutCancel(ctx)
	key := DeriveIdempotencyKey(req)
	logger := log.With().Str("form_key", key).Logger()
	req.AdditionalServices = s.withServiceTypes(req.AdditionalServices)

	existing, err := s.store.Reserve(ctx, key, s.now())
	if err != nil {
		logger.Error().Err(err).Msg("service: failed to reserve submission")
		return nil, fmt.Errorf("service: failed to reserve submission: %w", err)
	}
	if existing != nil {
		return s.replay(logger, existing)
	}

	result, err := s.process(ctx, logger, key, req)
	if err != nil {
		if relErr := s.store.Release(ctx, key); relErr != nil {
			logger.Error().Err(relErr).Msg("service: failed to release submission")
		}
		return nil, err
	}

	if err := s.complete(ctx, logger, key, result); err != nil {
		logger.Error().Err(err).
			Str("order_id", result.OrderID).
			Str("invoice_id", result.InvoiceID).
			Msg("service: submission record left pending, reconcile before the key is reclaimed")
	}

	return result, nil
}

// complete stores the result, retrying the store write once.
func (s *service) complete(ctx context.Context, logger zerolog.Logger, key string, result *SubmissionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("service: failed to encode submission result: %w", err)
	}

	if err = s.store.Complete(ctx, key, payload, s.now()); err == nil {
		return nil
	}
	logger.Warn().Err(err).Msg("service: failed to record completed submission, retrying")

	if err = s.store.Complete(ctx, key, payload, s.now()); err != nil {
		return fmt.Errorf("service: failed to record completed submission: %w", err)
	}
	return nil
}

func (s *service) replay(logger zerolog.Logger, existing *Submission) (*SubmissionResult, error) {
	if existing.Status != SubmissionCompleted || len(existing.Result) == 0 {
		logger.Warn().Str("status", string(existing.Status)).Msg("service: duplicate submission while the first one is in progress")
		return nil, ErrSubmissionInProgress
	}

	var result SubmissionResult
	if err := json.Unmarshal(existing.Result, &result); err != nil {
		return nil, fmt.Errorf("service: failed to decode stored submission: %w", err)
	}
	result.Duplicate = true

	logger.Info().Str("order_id", result.OrderID).Str("invoice_id", result.InvoiceID).Msg("service: duplicate submission, returning stored result")
	return &result, nil
}

func (s *service) process(ctx context.Context, logger zerolog.Logger, key string, req SubmissionRequest) (*SubmissionResult, error) {
	contact := req.ContactInfo
	state := StateStart
	logger.Debug().Str("state", string(state)).Int("guest_count", req.GuestCount).Msg("service: submission started")

	resolution := s.customers.Upsert(ctx, contact)
	customerID := resolution.CustomerID
	state = StateCustomerResolved
	logger.Info().Str("state", string(state)).Str("customer_id", customerID).Bool("existing_customer", resolution.Existing).Msg("service: customer step finished")

	items := BuildLineItems(req.Package, req.GuestCount, req.Entrees, req.Sides, req.AdditionalServices)
	order, err := s.orders.Create(ctx, items, req.GuestCount, contact, customerID)
	if err != nil {
		state = StateOrderFailed
		logger.Error().Err(err).Str("state", string(state)).Msg("service: submission aborted")
		return nil, &SubmissionError{State: state, Err: fmt.Errorf("%w: %w", ErrOrderNotCreated, err)}
	}
	state = StateOrderCreated
	logger.Info().Str("state", string(state)).Str("order_id", order.ID).Msg("service: order step finished")

	summaryItems := order.LineItems
	if len(summaryItems) == 0 {
		summaryItems = items
	}
	summary := SelectionSummary(summaryItems, req.GuestCount, contact)

	invoice, err := s.invoices.Create(ctx, order.ID, customerID, contact, summary)
	if err != nil {
		state = StateInvoiceFailed
		logger.Error().Err(err).Str("state", string(state)).Str("orphan_order_id", order.ID).Msg("service: submission aborted, order left without invoice")
		return nil, &SubmissionError{State: state, OrderID: order.ID, Err: fmt.Errorf("%w: %w", ErrInvoiceNotCreated, err)}
	}
	state = StateInvoiceCreated
	logger.Info().Str("state", string(state)).Str("invoice_id", invoice.ID).Msg("service: invoice step finished")

	notification := s.notifier.NotifyInvoiceCreated(ctx, s.notification(invoice, order, customerID, contact))
	if notification.Success {
		state = StateNotified
	} else {
		state = StateNotificationFailed
	}
	logger.Info().Str("state", string(state)).Msg("service: notification step finished")

	result := &SubmissionResult{
		Success:            true,
		OrderID:            order.ID,
		InvoiceID:          invoice.ID,
		FormIdempotencyKey: key,
		Message:            successMessage,
		EventDetails: EventDetails{
			Date:           orDefault(contact.EventDate, "TBD"),
			Time:           orDefault(contact.Time, "TBD"),
			Location:       orDefault(contact.Location, "TBD"),
			DeliveryMethod: orDefault(contact.DeliveryMethod, "TBD"),
			GuestCount:     req.GuestCount,
		},
		SelectionSummary:   summary,
		InvoiceDescription: orDefault(invoice.Description, "Not set"),
		EmailNotification:  &notification,
	}
	if customerID != "" {
		name := orDefault(contact.FirstName, "Guest") + " " + orDefault(contact.LastName, "Customer")
		result.CustomerID = &customerID
		result.EventDetails.CustomerName = &name
	}

	logger.Info().Str("state", string(StateResponded)).Str("order_id", order.ID).Str("invoice_id", invoice.ID).Msg("service: submission completed")
	return result, nil
}

func (s *service) notification(invoice *square.Invoice, order *square.Order, customerID string, c ContactInfo) notify.InvoiceCreated {
	in := notify.InvoiceCreated{
		InvoiceID: invoice.ID,
		Title:     invoice.Title,
		OrderID:   order.ID,
		EventDate: LongDate(invoice.SaleOrServiceDate),
	}
	if order.TotalMoney != nil {
		total := order.TotalMoney.Amount
		in.TotalCents = &total
	}
	if customerID != "" {
		in.Customer = &notify.Customer{
			ID:           customerID,
			GivenName:    c.FirstName,
			FamilyName:   c.LastName,
			EmailAddress: c.Email,
			PhoneNumber:  c.Phone,
		}
	}
	return in
}

// withServiceTypes takes the pricing mode from the catalog for services
// submitted without one.
func (s *service) withServiceTypes(services []catalog.Service) []catalog.Service {
	if s.catalog == nil || len(services) == 0 {
		return services
	}
	out := make([]catalog.Service, len(services))
	copy(out, services)
	for i := range out {
		if out[i].Type != "" {
			continue
		}
		if known, ok := s.catalog.Service(out[i].ID); ok {
			out[i].Type = known.Type
		}
	}
	return out
}
