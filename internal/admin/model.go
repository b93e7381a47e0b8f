package admin

import "github.com/vasiliy-maslov/catering-service/internal/square"

type LineItem struct {
	Name           string        `json:"name"`
	Quantity       string        `json:"quantity"`
	Note           string        `json:"note,omitempty"`
	BasePriceMoney *square.Money `json:"basePriceMoney"`
	TotalMoney     *square.Money `json:"totalMoney,omitempty"`
}

type OrderSummary struct {
	ID          string        `json:"id"`
	ReferenceID string        `json:"referenceId"`
	Status      string        `json:"status"`
	TotalMoney  *square.Money `json:"totalMoney"`
	CreatedAt   string        `json:"createdAt"`
	Note        string        `json:"note"`
	LineItems   []LineItem    `json:"lineItems"`
}

type Recipient struct {
	GivenName    string `json:"givenName"`
	FamilyName   string `json:"familyName"`
	EmailAddress string `json:"emailAddress"`
	CompanyName  string `json:"companyName"`
}

type InvoiceSummary struct {
	ID               string        `json:"id"`
	OrderID          string        `json:"orderId"`
	Status           string        `json:"status"`
	TotalMoney       *square.Money `json:"totalMoney"`
	CreatedAt        string        `json:"createdAt"`
	PrimaryRecipient *Recipient    `json:"primaryRecipient"`
	DeliveryMethod   string        `json:"deliveryMethod"`
}

type Address struct {
	AddressLine1                 string `json:"addressLine1"`
	Locality                     string `json:"locality"`
	AdministrativeDistrictLevel1 string `json:"administrativeDistrictLevel1"`
}

type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Type    string   `json:"type"`
	Address *Address `json:"address"`
}

type Customer struct {
	ID           string `json:"id"`
	GivenName    string `json:"givenName"`
	FamilyName   string `json:"familyName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	CreatedAt    string `json:"createdAt"`
}

type PublishedInvoice struct {
	ID         string        `json:"id"`
	Version    int64         `json:"version"`
	Status     string        `json:"status"`
	TotalMoney *square.Money `json:"totalMoney"`
}

// LineItemUpdate carries a unit price in dollars, as edited in the admin panel.
type LineItemUpdate struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Note     string  `json:"note,omitempty"`
	Price    float64 `json:"price"`
}

type OrderUpdate struct {
	OrderID   string
	LineItems []LineItemUpdate
	Note      string
	Version   *int64
}

type UpdatedOrder struct {
	ID         string        `json:"id"`
	Version    int64         `json:"version"`
	TotalMoney *square.Money `json:"totalMoney"`
	LineItems  []LineItem    `json:"lineItems"`
	Note       string        `json:"note"`
}

type OrderVerification struct {
	OrderExists    bool          `json:"orderExists"`
	OrderID        string        `json:"orderId"`
	OrderStatus    string        `json:"orderStatus"`
	OrderTotal     *square.Money `json:"orderTotal"`
	OrderLineItems []LineItem    `json:"orderLineItems"`
	OrderCreatedAt string        `json:"orderCreatedAt"`
	OrderUpdatedAt string        `json:"orderUpdatedAt"`
}

func toLineItems(items []square.LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, LineItem{
			Name:           it.Name,
			Quantity:       it.Quantity,
			Note:           it.Note,
			BasePriceMoney: it.BasePriceMoney,
			TotalMoney:     it.TotalMoney,
		})
	}
	return out
}
