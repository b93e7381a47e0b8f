package catering

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/money"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

const (
	basePackageSuffix   = " - Base Package"
	quoteRequiredSuffix = " (Quote Required)"
)

type OrderAPI interface {
	CreateOrder(ctx context.Context, in square.CreateOrderRequest) (*square.Order, error)
}

// BuildLineItems prices a selection: package base first, then entrées,
// sides and services. Zero-priced items are dropped except the package base
// and quote-based services.
func BuildLineItems(pkg *catalog.Package, guestCount int, entrees []catalog.Entree, sides []catalog.Side, services []catalog.Service) []square.LineItem {
	perGuest := strconv.Itoa(guestCount)
	items := make([]square.LineItem, 0, 1+len(entrees)+len(sides)+len(services))

	if pkg != nil {
		items = append(items, lineItem(pkg.Name+basePackageSuffix, perGuest, pkg.Price))
	}

	for _, e := range entrees {
		if e.Price > 0 {
			items = append(items, lineItem(e.Name, perGuest, e.Price))
		}
	}

	for _, s := range sides {
		if s.Price > 0 {
			items = append(items, lineItem(s.Name, perGuest, s.Price))
		}
	}

	for _, s := range services {
		switch {
		case s.Type == catalog.QuoteBased:
			items = append(items, lineItem(s.Name+quoteRequiredSuffix, "1", 0))
		case s.Price <= 0:
			// unpriced and not quote-based
		case s.Type == catalog.PerPerson:
			items = append(items, lineItem(s.Name, perGuest, s.Price))
		default:
			items = append(items, lineItem(s.Name, "1", s.Price))
		}
	}

	return items
}

func lineItem(name, quantity string, price float64) square.LineItem {
	return square.LineItem{
		Name:     name,
		Quantity: quantity,
		BasePriceMoney: &square.Money{
			Amount:   money.ToCents(price),
			Currency: money.Currency,
		},
	}
}

// LineItemsTotal sums unit price times quantity in cents.
func LineItemsTotal(items []square.LineItem) (int64, error) {
	var total int64
	for _, it := range items {
		if it.BasePriceMoney == nil {
			continue
		}
		qty, err := strconv.ParseInt(it.Quantity, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("line item %q has invalid quantity %q: %w", it.Name, it.Quantity, err)
		}
		total += it.BasePriceMoney.Amount * qty
	}
	return total, nil
}

func OrderNote(guestCount int, c ContactInfo) string {
	return fmt.Sprintf("Catering event for %d guests on %s at %s",
		guestCount, orDefault(c.EventDate, "TBD"), orDefault(c.Location, "Unknown location"))
}

type OrderBuilder struct {
	api        OrderAPI
	locationID string
	newKey     func() string
	now        func() time.Time
}

func NewOrderBuilder(api OrderAPI, locationID string, newKey func() string, now func() time.Time) *OrderBuilder {
	return &OrderBuilder{api: api, locationID: locationID, newKey: newKey, now: now}
}

func (b *OrderBuilder) Create(ctx context.Context, items []square.LineItem, guestCount int, c ContactInfo, customerID string) (*square.Order, error) {
	req := square.CreateOrderRequest{
		IdempotencyKey: b.newKey(),
		Order: square.Order{
			LocationID:  b.locationID,
			LineItems:   items,
			ReferenceID: referenceID(b.now()),
			Note:        OrderNote(guestCount, c),
			CustomerID:  customerID,
		},
	}

	order, err := b.api.CreateOrder(ctx, req)
	if err != nil {
		log.Error().Err(err).Int("line_items", len(items)).Msg("service: failed to create order")
		return nil, err
	}
	if order == nil || order.ID == "" {
		return nil, errors.New("order creation returned no order id")
	}

	log.Info().Str("order_id", order.ID).Str("customer_id", customerID).Msg("service: order created")
	return order, nil
}
