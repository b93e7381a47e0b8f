package catering_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

func TestLongDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-06-14", want: "Saturday, June 14, 2025"},
		{in: "", want: "TBD"},
		{in: "next friday", want: "next friday"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catering.LongDate(tt.in), "input %q", tt.in)
	}
}

func TestInvoiceTitle(t *testing.T) {
	tests := []struct {
		name string
		c    catering.ContactInfo
		want string
	}{
		{
			name: "full",
			c:    catering.ContactInfo{FirstName: "Jane", LastName: "Doe", EventDate: "2025-06-14", Location: "Hall A"},
			want: "Catering Invoice - Jane Doe - Saturday, June 14, 2025 at Hall A",
		},
		{
			name: "last_name_only",
			c:    catering.ContactInfo{LastName: "Doe"},
			want: "Catering Invoice - Doe - TBD at TBD",
		},
		{
			name: "empty",
			want: "Catering Invoice - Guest - TBD at TBD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catering.InvoiceTitle(tt.c))
		})
	}
}

func TestBuildInvoice(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	c := catering.ContactInfo{FirstName: "Jane", EventDate: "2025-06-14", Location: "Hall A"}

	inv := catering.BuildInvoice("LOC", "O1", "C1", c, "summary", now)

	assert.Equal(t, "LOC", inv.LocationID)
	assert.Equal(t, "O1", inv.OrderID)
	assert.Equal(t, "summary", inv.Description)
	assert.Equal(t, "EMAIL", inv.DeliveryMethod)
	assert.Equal(t, "2025-06-14", inv.SaleOrServiceDate)
	require.NotNil(t, inv.PrimaryRecipient)
	assert.Equal(t, "C1", inv.PrimaryRecipient.CustomerID)
	require.NotNil(t, inv.AcceptedPaymentMethods)
	assert.True(t, inv.AcceptedPaymentMethods.Card)
	assert.False(t, inv.AcceptedPaymentMethods.BankAccount)

	require.Len(t, inv.PaymentRequests, 1)
	req := inv.PaymentRequests[0]
	assert.Equal(t, "BALANCE", req.RequestType)
	// 23:30 EST is already June 2 in UTC.
	assert.Equal(t, "2025-07-02", req.DueDate)

	days := make([]int, 0, len(req.Reminders))
	for _, r := range req.Reminders {
		days = append(days, r.RelativeScheduledDays)
		assert.NotEmpty(t, r.Message)
	}
	assert.Equal(t, []int{3, 7, 14, 21}, days)
}

func TestBuildInvoice_WithoutCustomer(t *testing.T) {
	inv := catering.BuildInvoice("LOC", "O1", "", catering.ContactInfo{EventDate: "soon"}, "", time.Now())

	assert.Nil(t, inv.PrimaryRecipient)
	assert.Empty(t, inv.SaleOrServiceDate)
}

func TestInvoiceBuilder_Create(t *testing.T) {
	api := new(MockPlatform)
	api.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(r square.CreateInvoiceRequest) bool {
		return r.IdempotencyKey == "inv-key" && r.Invoice.OrderID == "O1" && r.Invoice.LocationID == "LOC"
	})).Return(&square.Invoice{ID: "I1"}, nil).Once()

	b := catering.NewInvoiceBuilder(api, "LOC", func() string { return "inv-key" }, time.Now)
	inv, err := b.Create(context.Background(), "O1", "", catering.ContactInfo{}, "s")

	require.NoError(t, err)
	assert.Equal(t, "I1", inv.ID)
	api.AssertExpectations(t)
}

func TestInvoiceBuilder_CreateError(t *testing.T) {
	api := new(MockPlatform)
	api.On("CreateInvoice", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	b := catering.NewInvoiceBuilder(api, "LOC", func() string { return "k" }, time.Now)
	_, err := b.Create(context.Background(), "O1", "", catering.ContactInfo{}, "s")

	assert.Error(t, err)
}

func TestSelectionSummary(t *testing.T) {
	items := []square.LineItem{
		{Name: "Kaycee's Kitchen #1 - Base Package", Quantity: "20", BasePriceMoney: usd(3000)},
		{Name: "Crab Cakes", Quantity: "20", BasePriceMoney: usd(2800)},
		{Name: "Cake Cutting", Quantity: "1", BasePriceMoney: usd(4000)},
		{Name: "Standard Beverage Service", Quantity: "20", BasePriceMoney: usd(500)},
		{Name: "Delivery and Setup Fee (Quote Required)", Quantity: "1", BasePriceMoney: usd(0)},
	}
	c := catering.ContactInfo{
		FirstName:           "Jane",
		LastName:            "Doe",
		CompanyName:         "Acme",
		Email:               "jane@example.com",
		EventDate:           "2025-06-14",
		Location:            "Hall A",
		DeliveryMethod:      "delivery",
		Time:                "18:00",
		SpecialInstructions: "  Nut allergy  ",
	}

	got := catering.SelectionSummary(items, 20, c)

	for _, want := range []string{
		"CATERING EVENT DETAILS\n================================\n\n",
		"EVENT INFORMATION\n-----------------\n",
		"Date: Saturday, June 14, 2025\n",
		"Guest Count: 20 guests\n",
		"Delivery Method: Delivery\n",
		"BASE PACKAGE:\n• Kaycee's Kitchen #1 - Base Package - $30.00/guest\n",
		"ENTRÉES:\n• Crab Cakes - $28.00/guest\n• Cake Cutting - $40.00\n",
		"BEVERAGES:\n• Standard Beverage Service - $5.00/guest\n",
		"QUOTE REQUIRED:\n• Delivery and Setup Fee - Quote required\n",
		"Name: Jane Doe\nCompany: Acme\nEmail: jane@example.com\nPhone: Not provided\n",
		"SPECIAL INSTRUCTIONS\n--------------------\nNut allergy\n\n",
	} {
		assert.Contains(t, got, want)
	}
	assert.True(t, strings.HasSuffix(got, "• Payment is due 30 days from invoice date"))
}

func TestSelectionSummary_Defaults(t *testing.T) {
	got := catering.SelectionSummary(nil, 0, catering.ContactInfo{})

	assert.Contains(t, got, "• Package details - $0.00/guest\n")
	assert.Contains(t, got, "Delivery Method: TBD\n")
	assert.Contains(t, got, "Name: Guest\n")
	assert.NotContains(t, got, "ENTRÉES:")
	assert.NotContains(t, got, "SPECIAL INSTRUCTIONS")
	assert.NotContains(t, got, "Company:")
}
