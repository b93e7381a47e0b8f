package catering

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/vasiliy-maslov/catering-service/internal/catalog"
)

const formKeyPrefix = "form-"

// keyFields fixes the field order of the hashed document. Empty strings and a
// missing package encode as null.
type keyFields struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	EventDate  *string `json:"eventDate"`
	Location   *string `json:"location"`
	Time       *string `json:"time"`
	PackageID  *string `json:"packageId"`
	GuestCount int     `json:"guestCount"`
	TotalPrice float64 `json:"totalPrice"`
	Selections string  `json:"selections"`
}

type selections struct {
	Entrees            []catalog.Entree  `json:"entrees"`
	Sides              []catalog.Side    `json:"sides"`
	AdditionalServices []catalog.Service `json:"additionalServices"`
}

// DeriveIdempotencyKey returns "form-" followed by the first 16 hex chars of
// the SHA-256 of the submission's significant fields.
func DeriveIdempotencyKey(req SubmissionRequest) string {
	sel, _ := json.Marshal(selections{
		Entrees:            req.Entrees,
		Sides:              req.Sides,
		AdditionalServices: req.AdditionalServices,
	})

	var packageID *string
	if req.Package != nil {
		packageID = nullable(req.Package.ID)
	}

	c := req.ContactInfo
	doc, _ := json.Marshal(keyFields{
		Email:      nullable(c.Email),
		FirstName:  nullable(c.FirstName),
		LastName:   nullable(c.LastName),
		EventDate:  nullable(c.EventDate),
		Location:   nullable(c.Location),
		Time:       nullable(c.Time),
		PackageID:  packageID,
		GuestCount: req.GuestCount,
		TotalPrice: req.TotalPrice,
		Selections: string(sel),
	})

	sum := sha256.Sum256(doc)
	return formKeyPrefix + hex.EncodeToString(sum[:])[:16]
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
