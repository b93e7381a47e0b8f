// Package admin exposes the read and maintenance operations used by the
// back-office panel.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/money"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

const pageSize = 50

var (
	ErrMissingInvoiceID = errors.New("invoice id is required")
	ErrMissingOrderID   = errors.New("order id is required")
	ErrOrderNotFound    = errors.New("order not found")
)

type Platform interface {
	ListCustomers(ctx context.Context) ([]square.Customer, error)
	GetOrder(ctx context.Context, id string) (*square.Order, error)
	UpdateOrder(ctx context.Context, id string, in square.UpdateOrderRequest) (*square.Order, error)
	SearchOrders(ctx context.Context, in square.SearchOrdersRequest) ([]square.Order, error)
	GetInvoice(ctx context.Context, id string) (*square.Invoice, error)
	ListInvoices(ctx context.Context, locationID string, limit int) ([]square.Invoice, error)
	PublishInvoice(ctx context.Context, id string, in square.PublishInvoiceRequest) (*square.Invoice, error)
	ListLocations(ctx context.Context) ([]square.Location, error)
}

type Service interface {
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	ListInvoices(ctx context.Context) ([]InvoiceSummary, error)
	ListLocations(ctx context.Context) ([]Location, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	PublishInvoice(ctx context.Context, invoiceID string, version *int64) (*PublishedInvoice, error)
	UpdateOrder(ctx context.Context, in OrderUpdate) (*UpdatedOrder, error)
	VerifyOrder(ctx context.Context, orderID string) (*OrderVerification, error)
}

type service struct {
	platform   Platform
	locationID string
	newKey     func() string
}

func NewService(platform Platform, locationID string) Service {
	return &service{
		platform:   platform,
		locationID: locationID,
		newKey:     func() string { return uuid.Must(uuid.NewV4()).String() },
	}
}

func (s *service) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	orders, err := s.platform.SearchOrders(ctx, square.SearchOrdersRequest{
		LocationIDs: []string{s.locationID},
		Limit:       pageSize,
		SortField:   "CREATED_AT",
		SortOrder:   "DESC",
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummary{
			ID:          o.ID,
			ReferenceID: o.ReferenceID,
			Status:      o.State,
			TotalMoney:  o.TotalMoney,
			CreatedAt:   o.CreatedAt,
			Note:        o.Note,
			LineItems:   toLineItems(o.LineItems),
		})
	}
	return out, nil
}

func (s *service) ListInvoices(ctx context.Context) ([]InvoiceSummary, error) {
	invoices, err := s.platform.ListInvoices(ctx, s.locationID, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list invoices")
		return nil, fmt.Errorf("service: failed to list invoices: %w", err)
	}

	out := make([]InvoiceSummary, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		summary := InvoiceSummary{
			ID:             inv.ID,
			OrderID:        inv.OrderID,
			Status:         inv.Status,
			TotalMoney:     inv.TotalMoney(),
			CreatedAt:      inv.CreatedAt,
			DeliveryMethod: inv.DeliveryMethod,
		}
		if r := inv.PrimaryRecipient; r != nil {
			summary.PrimaryRecipient = &Recipient{
				GivenName:    r.GivenName,
				FamilyName:   r.FamilyName,
				EmailAddress: r.EmailAddress,
				CompanyName:  r.CompanyName,
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *service) ListLocations(ctx context.Context) ([]Location, error) {
	locations, err := s.platform.ListLocations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list locations")
		return nil, fmt.Errorf("service: failed to list locations: %w", err)
	}

	out := make([]Location, 0, len(locations))
	for _, l := range locations {
		loc := Location{ID: l.ID, Name: l.Name, Status: l.Status, Type: l.Type}
		if a := l.Address; a != nil {
			loc.Address = &Address{
				AddressLine1:                 a.AddressLine1,
				Locality:                     a.Locality,
				AdministrativeDistrictLevel1: a.AdministrativeDistrictLevel1,
			}
		}
		out = append(out, loc)
	}
	return out, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.platform.ListCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list customers")
		return nil, fmt.Errorf("service: failed to list customers: %w", err)
	}

	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		out = append(out, Customer{
			ID:           c.ID,
			GivenName:    c.GivenName,
			FamilyName:   c.FamilyName,
			EmailAddress: c.EmailAddress,
			PhoneNumber:  c.PhoneNumber,
			CreatedAt:    c.CreatedAt,
		})
	}
	return out, nil
}

// PublishInvoice publishes a draft. Without a version the invoice's current
// version is fetched first.
func (s *service) PublishInvoice(ctx context.Context, invoiceID string, version *int64) (*PublishedInvoice, error) {
	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}

	var v int64
	if version != nil {
		v = *version
	} else {
		current, err := s.platform.GetInvoice(ctx, invoiceID)
		if err != nil {
			log.Error().Err(err).Str("invoice_id", invoiceID).Msg("service: failed to fetch invoice version")
			return nil, fmt.Errorf("service: failed to fetch invoice %s: %w", invoiceID, err)
		}
		v = current.Version
	}

	inv, err := s.platform.PublishInvoice(ctx, invoiceID, square.PublishInvoiceRequest{
		Version:        v,
		IdempotencyKey: s.newKey(),
	})
	if err != nil {
		log.Error().Err(err).Str("invoice_id", invoiceID).Int64("version", v).Msg("service: failed to publish invoice")
		return nil, fmt.Errorf("service: failed to publish invoice %s: %w", invoiceID, err)
	}

	log.Info().Str("invoice_id", inv.ID).Str("status", inv.Status).Msg("service: invoice published")
	return &PublishedInvoice{
		ID:         inv.ID,
		Version:    inv.Version,
		Status:     inv.Status,
		TotalMoney: inv.TotalMoney(),
	}, nil
}

// UpdateOrder replaces the order's line items and note. Prices arrive in
// dollars and are rounded to cents.
func (s *service) UpdateOrder(ctx context.Context, in OrderUpdate) (*UpdatedOrder, error) {
	if in.OrderID == "" {
		return nil, ErrMissingOrderID
	}

	req := square.UpdateOrderRequest{
		IdempotencyKey: s.newKey(),
		Order: square.Order{
			LocationID: s.locationID,
			Note:       in.Note,
		},
	}
	if in.Version != nil {
		req.Order.Version = *in.Version
	}
	if in.LineItems != nil {
		req.FieldsToClear = []string{"line_items"}
		req.Order.LineItems = make([]square.LineItem, 0, len(in.LineItems))
		for _, it := range in.LineItems {
			req.Order.LineItems = append(req.Order.LineItems, square.LineItem{
				Name:     it.Name,
				Quantity: it.Quantity,
				Note:     it.Note,
				BasePriceMoney: &square.Money{
					Amount:   money.ToCents(it.Price),
					Currency: money.Currency,
				},
			})
		}
	}

	order, err := s.platform.UpdateOrder(ctx, in.OrderID, req)
	if err != nil {
		log.Error().Err(err).Str("order_id", in.OrderID).Msg("service: failed to update order")
		return nil, fmt.Errorf("service: failed to update order %s: %w", in.OrderID, err)
	}

	log.Info().Str("order_id", order.ID).Int64("version", order.Version).Msg("service: order updated")
	return &UpdatedOrder{
		ID:         order.ID,
		Version:    order.Version,
		TotalMoney: order.TotalMoney,
		LineItems:  toLineItems(order.LineItems),
		Note:       order.Note,
	}, nil
}

func (s *service) VerifyOrder(ctx context.Context, orderID string) (*OrderVerification, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	order, err := s.platform.GetOrder(ctx, orderID)
	if err != nil {
		if square.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("service: failed to verify order")
		return nil, fmt.Errorf("service: failed to get order %s: %w", orderID, err)
	}

	return &OrderVerification{
		OrderExists:    true,
		OrderID:        order.ID,
		OrderStatus:    order.State,
		OrderTotal:     order.TotalMoney,
		OrderLineItems: toLineItems(order.LineItems),
		OrderCreatedAt: order.CreatedAt,
		OrderUpdatedAt: order.UpdatedAt,
	}, nil
}
