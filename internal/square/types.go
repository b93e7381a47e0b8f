package square

// The types below are the plain-value views of the SDK records that the
// rest of the service works with. Empty strings stand for absent fields.

// Money is rendered directly in admin responses.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type LineItem struct {
	UID            string
	Name           string
	Quantity       string
	Note           string
	BasePriceMoney *Money
	TotalMoney     *Money
}

type Customer struct {
	ID           string
	GivenName    string
	FamilyName   string
	CompanyName  string
	EmailAddress string
	PhoneNumber  string
	ReferenceID  string
	Note         string
	CreatedAt    string
	UpdatedAt    string
	Version      int64
}

type CreateCustomerRequest struct {
	IdempotencyKey string
	GivenName      string
	FamilyName     string
	CompanyName    string
	EmailAddress   string
	PhoneNumber    string
	ReferenceID    string
	Note           string
}

type UpdateCustomerRequest struct {
	GivenName  string
	FamilyName string
}

// Order carries Note in the order metadata under the "note" key.
type Order struct {
	ID          string
	LocationID  string
	ReferenceID string
	CustomerID  string
	LineItems   []LineItem
	Note        string
	State       string
	Version     int64
	TotalMoney  *Money
	CreatedAt   string
	UpdatedAt   string
}

type CreateOrderRequest struct {
	IdempotencyKey string
	Order          Order
}

type UpdateOrderRequest struct {
	IdempotencyKey string
	Order          Order
	FieldsToClear  []string
}

// SearchOrdersRequest lists the orders of the given locations. Limit is the
// page size; every page is fetched.
type SearchOrdersRequest struct {
	LocationIDs []string
	Limit       int
	SortField   string
	SortOrder   string
}

type InvoiceRecipient struct {
	CustomerID   string
	GivenName    string
	FamilyName   string
	EmailAddress string
	CompanyName  string
	PhoneNumber  string
}

type InvoicePaymentReminder struct {
	RelativeScheduledDays int
	Message               string
}

type InvoicePaymentRequest struct {
	UID                 string
	RequestType         string
	DueDate             string
	Reminders           []InvoicePaymentReminder
	ComputedAmountMoney *Money
}

// AcceptedPaymentMethods is sent in full so disabled methods are explicit
// in the request.
type AcceptedPaymentMethods struct {
	Card           bool
	SquareGiftCard bool
	BankAccount    bool
	BuyNowPayLater bool
}

type Invoice struct {
	ID                     string
	Version                int64
	LocationID             string
	OrderID                string
	Status                 string
	Title                  string
	Description            string
	DeliveryMethod         string
	SaleOrServiceDate      string
	PrimaryRecipient       *InvoiceRecipient
	PaymentRequests        []InvoicePaymentRequest
	AcceptedPaymentMethods *AcceptedPaymentMethods
	PublicURL              string
	CreatedAt              string
	UpdatedAt              string
}

// TotalMoney sums the computed amounts of the invoice's payment requests.
// Nil until the platform has computed them.
func (i *Invoice) TotalMoney() *Money {
	var total *Money
	for _, pr := range i.PaymentRequests {
		if pr.ComputedAmountMoney == nil {
			continue
		}
		if total == nil {
			total = &Money{Currency: pr.ComputedAmountMoney.Currency}
		}
		total.Amount += pr.ComputedAmountMoney.Amount
	}
	return total
}

type CreateInvoiceRequest struct {
	IdempotencyKey string
	Invoice        Invoice
}

type PublishInvoiceRequest struct {
	Version        int64
	IdempotencyKey string
}

type Address struct {
	AddressLine1                 string
	Locality                     string
	AdministrativeDistrictLevel1 string
	PostalCode                   string
	Country                      string
}

type Location struct {
	ID      string
	Name    string
	Status  string
	Type    string
	Address *Address
}
