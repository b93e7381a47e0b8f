package catering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
	"github.com/vasiliy-maslov/catering-service/internal/money"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

func usd(cents int64) *square.Money {
	return &square.Money{Amount: cents, Currency: "USD"}
}

func TestBuildLineItems_PackageOnly(t *testing.T) {
	pkg := &catalog.Package{ID: "kkc1", Name: "Kaycee's Kitchen #1", Price: 30}

	items := catering.BuildLineItems(pkg, 20, []catalog.Entree{{Name: "Southern Fried Chicken", Price: 0}}, nil, nil)

	want := []square.LineItem{
		{Name: "Kaycee's Kitchen #1 - Base Package", Quantity: "20", BasePriceMoney: usd(3000)},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("BuildLineItems() mismatch (-want +got):\n%s", diff)
	}

	total, err := catering.LineItemsTotal(items)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), total)
	assert.Equal(t, "$600.00", money.Format(total))
}

func TestBuildLineItems_AllKinds(t *testing.T) {
	pkg := &catalog.Package{Name: "Kaycee's Kitchen #2", Price: 38}
	entrees := []catalog.Entree{{Name: "Crab Cakes", Price: 28}, {Name: "Free Entree", Price: 0}}
	sides := []catalog.Side{{Name: "Green Beans", Price: 0}, {Name: "Truffle Fries", Price: 3.5}}
	services := []catalog.Service{
		{Name: "Standard Beverage Service", Price: 5, Type: catalog.PerPerson},
		{Name: "Delivery and Setup Fee", Price: 150, Type: catalog.QuoteBased},
		{Name: "Cake Cutting", Price: 40},
		{Name: "Unpriced Extra", Price: 0},
	}

	items := catering.BuildLineItems(pkg, 10, entrees, sides, services)

	want := []square.LineItem{
		{Name: "Kaycee's Kitchen #2 - Base Package", Quantity: "10", BasePriceMoney: usd(3800)},
		{Name: "Crab Cakes", Quantity: "10", BasePriceMoney: usd(2800)},
		{Name: "Truffle Fries", Quantity: "10", BasePriceMoney: usd(350)},
		{Name: "Standard Beverage Service", Quantity: "10", BasePriceMoney: usd(500)},
		{Name: "Delivery and Setup Fee (Quote Required)", Quantity: "1", BasePriceMoney: usd(0)},
		{Name: "Cake Cutting", Quantity: "1", BasePriceMoney: usd(4000)},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("BuildLineItems() mismatch (-want +got):\n%s", diff)
	}

	total, err := catering.LineItemsTotal(items)
	require.NoError(t, err)
	assert.Equal(t, int64(38000+28000+3500+5000+0+4000), total)
}

func TestBuildLineItems_NoPackage(t *testing.T) {
	items := catering.BuildLineItems(nil, 5, nil, nil, nil)
	assert.Empty(t, items)
}

func TestLineItemsTotal_InvalidQuantity(t *testing.T) {
	_, err := catering.LineItemsTotal([]square.LineItem{{Name: "x", Quantity: "many", BasePriceMoney: usd(100)}})
	assert.Error(t, err)
}

func TestOrderNote(t *testing.T) {
	tests := []struct {
		name string
		c    catering.ContactInfo
		want string
	}{
		{
			name: "full",
			c:    catering.ContactInfo{EventDate: "2025-06-14", Location: "Hall A"},
			want: "Catering event for 20 guests on 2025-06-14 at Hall A",
		},
		{
			name: "defaults",
			want: "Catering event for 20 guests on TBD at Unknown location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catering.OrderNote(20, tt.c))
		})
	}
}

func TestOrderBuilder_Create(t *testing.T) {
	api := new(MockPlatform)
	items := []square.LineItem{{Name: "P - Base Package", Quantity: "20", BasePriceMoney: usd(3000)}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	want := square.CreateOrderRequest{
		IdempotencyKey: "order-key",
		Order: square.Order{
			LocationID:  "LOC",
			LineItems:   items,
			ReferenceID: "KKC-1748779200000",
			Note:        "Catering event for 20 guests on TBD at Unknown location",
			CustomerID:  "C1",
		},
	}
	api.On("CreateOrder", mock.Anything, want).Return(&square.Order{ID: "O1"}, nil).Once()

	b := catering.NewOrderBuilder(api, "LOC", func() string { return "order-key" }, func() time.Time { return now })
	order, err := b.Create(context.Background(), items, 20, catering.ContactInfo{}, "C1")

	require.NoError(t, err)
	assert.Equal(t, "O1", order.ID)
	api.AssertExpectations(t)
}

func TestOrderBuilder_CreateErrors(t *testing.T) {
	tests := []struct {
		name  string
		order *square.Order
		err   error
	}{
		{name: "platform_error", err: errors.New("boom")},
		{name: "missing_id", order: &square.Order{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockPlatform)
			if tt.order != nil {
				api.On("CreateOrder", mock.Anything, mock.Anything).Return(tt.order, tt.err).Once()
			} else {
				api.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			b := catering.NewOrderBuilder(api, "LOC", func() string { return "k" }, time.Now)
			order, err := b.Create(context.Background(), nil, 1, catering.ContactInfo{}, "")

			assert.Error(t, err)
			assert.Nil(t, order)
		})
	}
}
