package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
)

type ContactInfoRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	CompanyName         string `json:"companyName"`
	Email               string `json:"email" validate:"omitempty,email"`
	Phone               string `json:"phone"`
	EventDate           string `json:"eventDate"`
	Location            string `json:"location"`
	DeliveryMethod      string `json:"deliveryMethod"`
	Time                string `json:"time"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CreateInvoiceRequest struct {
	Package            *catalog.Package   `json:"package" validate:"required"`
	GuestCount         int                `json:"guestCount" validate:"min=1"`
	Entrees            []catalog.Entree   `json:"entrees"`
	Sides              []catalog.Side     `json:"sides"`
	AdditionalServices []catalog.Service  `json:"additionalServices"`
	TotalPrice         float64            `json:"totalPrice"`
	ContactInfo        ContactInfoRequest `json:"contactInfo"`
}

type CateringHandler struct {
	service  catering.Service
	catalog  *catalog.Catalog
	validate *validator.Validate
}

func NewCateringHandler(service catering.Service, cat *catalog.Catalog) *CateringHandler {
	return &CateringHandler{
		service:  service,
		catalog:  cat,
		validate: newValidator(),
	}
}

func (h *CateringHandler) RegisterRoutes(router chi.Router) {
	router.Post("/create-invoice", h.handleCreateInvoice)
	router.Get("/catalog", h.handleGetCatalog)
}

func (h *CateringHandler) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateInvoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request payload: %v", err))
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	c := requestPayload.ContactInfo
	submission := catering.SubmissionRequest{
		Package:            requestPayload.Package,
		GuestCount:         requestPayload.GuestCount,
		Entrees:            requestPayload.Entrees,
		Sides:              requestPayload.Sides,
		AdditionalServices: requestPayload.AdditionalServices,
		TotalPrice:         requestPayload.TotalPrice,
		ContactInfo: catering.ContactInfo{
			FirstName:           c.FirstName,
			LastName:            c.LastName,
			CompanyName:         c.CompanyName,
			Email:               c.Email,
			Phone:               c.Phone,
			EventDate:           c.EventDate,
			Location:            c.Location,
			DeliveryMethod:      c.DeliveryMethod,
			Time:                c.Time,
			SpecialInstructions: c.SpecialInstructions,
		},
	}

	result, err := h.service.Submit(r.Context(), submission)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create invoice via service")
		respondWithServiceError(w, err, "Failed to create invoice")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *CateringHandler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog)
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
