// Package square adapts the Square Go SDK to the customers, orders, invoices
// and locations calls the service makes.
package square

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	sdk "github.com/square/square-go-sdk"
	sdkclient "github.com/square/square-go-sdk/client"
	"github.com/square/square-go-sdk/option"
)

const (
	DefaultVersion = "2025-07-16"

	customersPageSize = 100
)

type Options struct {
	AccessToken string
	// BaseURL overrides the environment URL, used by tests.
	BaseURL    string
	Production bool
	Version    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	api *sdkclient.Client
}

func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = sdk.Environments.Sandbox
		if opts.Production {
			baseURL = sdk.Environments.Production
		}
	}

	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		api: sdkclient.NewClient(
			option.WithToken(opts.AccessToken),
			option.WithBaseURL(baseURL),
			option.WithHTTPClient(httpClient),
			option.WithHTTPHeader(http.Header{"Square-Version": []string{version}}),
		),
	}
}

// ListCustomers returns every customer, following the SDK pager.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	page, err := c.api.Customers.List(ctx, &sdk.ListCustomersRequest{
		Limit: sdk.Int(customersPageSize),
	})
	if err != nil {
		return nil, wrapError("list customers", err)
	}

	var customers []Customer
	iter := page.Iterator()
	for iter.Next(ctx) {
		if cust := iter.Current(); cust != nil {
			customers = append(customers, fromCustomer(cust))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, wrapError("list customers", err)
	}

	log.Debug().Int("customers", len(customers)).Msg("square: customers listed")
	return customers, nil
}

func (c *Client) CreateCustomer(ctx context.Context, in CreateCustomerRequest) (*Customer, error) {
	resp, err := c.api.Customers.Create(ctx, &sdk.CreateCustomerRequest{
		IdempotencyKey: optional(in.IdempotencyKey),
		GivenName:      optional(in.GivenName),
		FamilyName:     optional(in.FamilyName),
		CompanyName:    optional(in.CompanyName),
		EmailAddress:   optional(in.EmailAddress),
		PhoneNumber:    optional(in.PhoneNumber),
		ReferenceID:    optional(in.ReferenceID),
		Note:           optional(in.Note),
	})
	if err != nil {
		return nil, wrapError("create customer", err)
	}
	if resp.Customer == nil || value(resp.Customer.ID) == "" {
		return nil, errors.New("square: create customer response has no customer")
	}
	customer := fromCustomer(resp.Customer)
	return &customer, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in UpdateCustomerRequest) (*Customer, error) {
	resp, err := c.api.Customers.Update(ctx, &sdk.UpdateCustomerRequest{
		CustomerID: id,
		GivenName:  optional(in.GivenName),
		FamilyName: optional(in.FamilyName),
	})
	if err != nil {
		return nil, wrapError("update customer", err)
	}
	if resp.Customer == nil || value(resp.Customer.ID) == "" {
		return nil, errors.New("square: update customer response has no customer")
	}
	customer := fromCustomer(resp.Customer)
	return &customer, nil
}

// CreateOrder returns the created order; a response without an order id is
// reported as an error.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest) (*Order, error) {
	resp, err := c.api.Orders.Create(ctx, &sdk.CreateOrderRequest{
		IdempotencyKey: optional(in.IdempotencyKey),
		Order:          toOrder(in.Order),
	})
	if err != nil {
		return nil, wrapError("create order", err)
	}
	if resp.Order == nil || value(resp.Order.ID) == "" {
		return nil, errors.New("square: create order response has no order")
	}
	return fromOrder(resp.Order), nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	resp, err := c.api.Orders.Get(ctx, &sdk.GetOrdersRequest{OrderID: id})
	if err != nil {
		return nil, wrapError("get order", err)
	}
	if resp.Order == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Errors: []ErrorDetail{{Category: CategoryInvalidRequestError, Code: CodeNotFound, Detail: "order " + id + " not found"}}}
	}
	return fromOrder(resp.Order), nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, in UpdateOrderRequest) (*Order, error) {
	resp, err := c.api.Orders.Update(ctx, &sdk.UpdateOrderRequest{
		OrderID:        id,
		Order:          toOrder(in.Order),
		FieldsToClear:  in.FieldsToClear,
		IdempotencyKey: optional(in.IdempotencyKey),
	})
	if err != nil {
		return nil, wrapError("update order", err)
	}
	if resp.Order == nil {
		return nil, errors.New("square: update order response has no order")
	}
	return fromOrder(resp.Order), nil
}

// SearchOrders drains every page of the search. A cursor that comes back
// twice stops the walk with an error.
func (c *Client) SearchOrders(ctx context.Context, in SearchOrdersRequest) ([]Order, error) {
	req := &sdk.SearchOrdersRequest{LocationIDs: in.LocationIDs}
	if in.Limit > 0 {
		req.Limit = sdk.Int(in.Limit)
	}
	if in.SortField != "" {
		sort := &sdk.SearchOrdersSort{SortField: sdk.SearchOrdersSortField(in.SortField)}
		if in.SortOrder != "" {
			sort.SortOrder = sdk.SortOrder(in.SortOrder).Ptr()
		}
		req.Query = &sdk.SearchOrdersQuery{Sort: sort}
	}

	var (
		orders []Order
		seen   = make(map[string]bool)
	)
	for {
		resp, err := c.api.Orders.Search(ctx, req)
		if err != nil {
			return nil, wrapError("search orders", err)
		}
		for _, o := range resp.Orders {
			if o != nil {
				orders = append(orders, *fromOrder(o))
			}
		}

		cursor := value(resp.Cursor)
		if cursor == "" {
			return orders, nil
		}
		if seen[cursor] {
			return nil, fmt.Errorf("square: pagination cursor %q repeated", cursor)
		}
		seen[cursor] = true
		req.Cursor = sdk.String(cursor)
	}
}

func (c *Client) CreateInvoice(ctx context.Context, in CreateInvoiceRequest) (*Invoice, error) {
	resp, err := c.api.Invoices.Create(ctx, &sdk.CreateInvoiceRequest{
		IdempotencyKey: optional(in.IdempotencyKey),
		Invoice:        toInvoice(in.Invoice),
	})
	if err != nil {
		return nil, wrapError("create invoice", err)
	}
	if resp.Invoice == nil || value(resp.Invoice.ID) == "" {
		return nil, errors.New("square: create invoice response has no invoice")
	}
	return fromInvoice(resp.Invoice), nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	resp, err := c.api.Invoices.Get(ctx, &sdk.GetInvoicesRequest{InvoiceID: id})
	if err != nil {
		return nil, wrapError("get invoice", err)
	}
	if resp.Invoice == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Errors: []ErrorDetail{{Category: CategoryInvalidRequestError, Code: CodeNotFound, Detail: "invoice " + id + " not found"}}}
	}
	return fromInvoice(resp.Invoice), nil
}

// ListInvoices returns every invoice of the location, limit per page.
func (c *Client) ListInvoices(ctx context.Context, locationID string, limit int) ([]Invoice, error) {
	req := &sdk.ListInvoicesRequest{LocationID: locationID}
	if limit > 0 {
		req.Limit = sdk.Int(limit)
	}

	page, err := c.api.Invoices.List(ctx, req)
	if err != nil {
		return nil, wrapError("list invoices", err)
	}

	var invoices []Invoice
	iter := page.Iterator()
	for iter.Next(ctx) {
		if inv := iter.Current(); inv != nil {
			invoices = append(invoices, *fromInvoice(inv))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, wrapError("list invoices", err)
	}
	return invoices, nil
}

func (c *Client) PublishInvoice(ctx context.Context, id string, in PublishInvoiceRequest) (*Invoice, error) {
	resp, err := c.api.Invoices.Publish(ctx, &sdk.PublishInvoiceRequest{
		InvoiceID:      id,
		Version:        int(in.Version),
		IdempotencyKey: optional(in.IdempotencyKey),
	})
	if err != nil {
		return nil, wrapError("publish invoice", err)
	}
	if resp.Invoice == nil {
		return nil, errors.New("square: publish invoice response has no invoice")
	}
	return fromInvoice(resp.Invoice), nil
}

func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	resp, err := c.api.Locations.List(ctx)
	if err != nil {
		return nil, wrapError("list locations", err)
	}

	locations := make([]Location, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		if l != nil {
			locations = append(locations, fromLocation(l))
		}
	}
	return locations, nil
}
