package catering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

const customerNote = "Catering customer"

type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]square.Customer, error)
	CreateCustomer(ctx context.Context, in square.CreateCustomerRequest) (*square.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in square.UpdateCustomerRequest) (*square.Customer, error)
}

type CreateStrategy string

const (
	StrategyFull      CreateStrategy = "full"
	StrategyEmailOnly CreateStrategy = "email_only"
)

// Attempt records one customer creation try.
type Attempt struct {
	Strategy   CreateStrategy
	CustomerID string
	Err        error
}

type Resolution struct {
	CustomerID string
	Existing   bool
	Attempts   []Attempt
}

type createStrategy struct {
	name  CreateStrategy
	build func(c ContactInfo) (square.CreateCustomerRequest, bool)
}

type CustomerResolver struct {
	api        CustomerAPI
	strategies []createStrategy
	newKey     func() string
	now        func() time.Time
}

func NewCustomerResolver(api CustomerAPI, newKey func() string, now func() time.Time) *CustomerResolver {
	return &CustomerResolver{
		api: api,
		strategies: []createStrategy{
			{name: StrategyFull, build: fullCustomer},
			{name: StrategyEmailOnly, build: emailOnlyCustomer},
		},
		newKey: newKey,
		now:    now,
	}
}

// FindByEmail scans every customer for a case-insensitive email match.
// Lookup failures are logged and reported as not found.
func (r *CustomerResolver) FindByEmail(ctx context.Context, email string) (*square.Customer, bool) {
	if email == "" {
		return nil, false
	}

	customers, err := r.api.ListCustomers(ctx)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("service: customer lookup failed, treating as not found")
		return nil, false
	}

	for i := range customers {
		if customers[i].EmailAddress != "" && strings.EqualFold(customers[i].EmailAddress, email) {
			return &customers[i], true
		}
	}
	return nil, false
}

// Upsert resolves the customer for a submission. It never fails; an empty
// CustomerID means the workflow continues without a customer link.
func (r *CustomerResolver) Upsert(ctx context.Context, c ContactInfo) Resolution {
	if !c.HasIdentity() {
		log.Info().Msg("service: no contact info provided, skipping customer creation")
		return Resolution{}
	}

	if existing, ok := r.FindByEmail(ctx, c.Email); ok {
		return Resolution{CustomerID: r.refreshNames(ctx, existing, c), Existing: true}
	}

	var res Resolution
	for _, s := range r.strategies {
		req, ok := s.build(c)
		if !ok {
			continue
		}
		req.IdempotencyKey = r.newKey()
		req.ReferenceID = referenceID(r.now())
		req.Note = customerNote

		created, err := r.api.CreateCustomer(ctx, req)
		attempt := Attempt{Strategy: s.name, Err: err}
		if err == nil {
			attempt.CustomerID = created.ID
		}
		res.Attempts = append(res.Attempts, attempt)

		if err != nil {
			log.Warn().Err(err).Str("strategy", string(s.name)).Msg("service: customer creation attempt failed")
			continue
		}

		log.Info().Str("customer_id", created.ID).Str("strategy", string(s.name)).Msg("service: customer created")
		res.CustomerID = created.ID
		return res
	}

	log.Warn().Int("attempts", len(res.Attempts)).Msg("service: proceeding without customer")
	return res
}

func (r *CustomerResolver) refreshNames(ctx context.Context, existing *square.Customer, c ContactInfo) string {
	var upd square.UpdateCustomerRequest
	if c.FirstName != "" && c.FirstName != existing.GivenName {
		upd.GivenName = c.FirstName
	}
	if c.LastName != "" && c.LastName != existing.FamilyName {
		upd.FamilyName = c.LastName
	}
	if upd == (square.UpdateCustomerRequest{}) {
		return existing.ID
	}

	updated, err := r.api.UpdateCustomer(ctx, existing.ID, upd)
	if err != nil {
		log.Warn().Err(err).Str("customer_id", existing.ID).Msg("service: failed to update customer, using existing")
		return existing.ID
	}
	log.Info().Str("customer_id", updated.ID).Msg("service: customer updated")
	return updated.ID
}

func fullCustomer(c ContactInfo) (square.CreateCustomerRequest, bool) {
	req := square.CreateCustomerRequest{
		GivenName:    orDefault(c.FirstName, "Guest"),
		FamilyName:   orDefault(c.LastName, "Customer"),
		CompanyName:  c.CompanyName,
		EmailAddress: c.Email,
	}
	if c.Phone != "" {
		if phone, ok := NormalizePhone(c.Phone); ok {
			req.PhoneNumber = phone
		} else {
			log.Info().Str("phone", c.Phone).Msg("service: phone number format not supported, skipping")
		}
	}
	return req, true
}

func emailOnlyCustomer(c ContactInfo) (square.CreateCustomerRequest, bool) {
	if c.Email == "" {
		return square.CreateCustomerRequest{}, false
	}
	return square.CreateCustomerRequest{EmailAddress: c.Email}, true
}

// NormalizePhone keeps the digits of raw and formats them in E.164 style.
// Only 10 to 15 digit numbers are accepted; 10 digits are treated as US.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) < 10 || len(digits) > 15:
		return "", false
	case len(digits) == 10:
		return "+1" + digits, true
	default:
		return "+" + digits, true
	}
}

func referenceID(now time.Time) string {
	return fmt.Sprintf("KKC-%d", now.UnixMilli())
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
