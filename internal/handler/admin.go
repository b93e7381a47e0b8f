package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/admin"
)

type PublishInvoiceRequest struct {
	InvoiceID string `json:"invoiceId"`
	Version   *int64 `json:"version"`
}

type LineItemPriceRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateLineItemRequest takes basePriceMoney.amount in dollars.
type UpdateLineItemRequest struct {
	Name           string               `json:"name" validate:"required"`
	Quantity       string               `json:"quantity" validate:"required"`
	Note           string               `json:"note"`
	BasePriceMoney LineItemPriceRequest `json:"basePriceMoney"`
}

type UpdateOrderRequest struct {
	OrderID   string                  `json:"orderId"`
	LineItems []UpdateLineItemRequest `json:"lineItems" validate:"omitempty,dive"`
	Note      string                  `json:"note"`
	Version   *int64                  `json:"version"`
}

type PublishInvoiceResponse struct {
	Success bool                    `json:"success"`
	Invoice *admin.PublishedInvoice `json:"invoice"`
	Message string                  `json:"message"`
}

type UpdateOrderResponse struct {
	Success bool                `json:"success"`
	Order   *admin.UpdatedOrder `json:"order"`
	Message string              `json:"message"`
}

type VerifyOrderResponse struct {
	Success bool `json:"success"`
	*admin.OrderVerification
}

type AdminHandler struct {
	service  admin.Service
	validate *validator.Validate
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{service: service, validate: newValidator()}
}

func (h *AdminHandler) RegisterRoutes(router chi.Router) {
	router.Get("/list-orders", h.handleListOrders)
	router.Get("/list-invoices", h.handleListInvoices)
	router.Get("/list-locations", h.handleListLocations)
	router.Get("/list-customers", h.handleListCustomers)
	router.Post("/publish-invoice", h.handlePublishInvoice)
	router.Put("/update-order", h.handleUpdateOrder)
	router.Get("/verify-order", h.handleVerifyOrder)
}

func (h *AdminHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders via service")
		respondWithServiceError(w, err, "Failed to list orders")
		return
	}
	if orders == nil {
		orders = []admin.OrderSummary{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "orders": orders, "count": len(orders)})
}

func (h *AdminHandler) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list invoices via service")
		respondWithServiceError(w, err, "Failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []admin.InvoiceSummary{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "invoices": invoices, "count": len(invoices)})
}

func (h *AdminHandler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list locations via service")
		respondWithServiceError(w, err, "Failed to list locations")
		return
	}
	if locations == nil {
		locations = []admin.Location{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "locations": locations, "count": len(locations)})
}

func (h *AdminHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list customers via service")
		respondWithServiceError(w, err, "Failed to list customers")
		return
	}
	if customers == nil {
		customers = []admin.Customer{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "customers": customers, "count": len(customers)})
}

func (h *AdminHandler) handlePublishInvoice(w http.ResponseWriter, r *http.Request) {
	var requestPayload PublishInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	invoice, err := h.service.PublishInvoice(r.Context(), requestPayload.InvoiceID, requestPayload.Version)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", requestPayload.InvoiceID).Msg("Failed to publish invoice via service")
		respondWithServiceError(w, err, "Failed to publish invoice")
		return
	}

	respondWithJSON(w, http.StatusOK, PublishInvoiceResponse{
		Success: true,
		Invoice: invoice,
		Message: "Invoice published successfully",
	})
}

func (h *AdminHandler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	update := admin.OrderUpdate{
		OrderID: requestPayload.OrderID,
		Note:    requestPayload.Note,
		Version: requestPayload.Version,
	}
	if requestPayload.LineItems != nil {
		update.LineItems = make([]admin.LineItemUpdate, 0, len(requestPayload.LineItems))
		for _, it := range requestPayload.LineItems {
			update.LineItems = append(update.LineItems, admin.LineItemUpdate{
				Name:     it.Name,
				Quantity: it.Quantity,
				Note:     it.Note,
				Price:    it.BasePriceMoney.Amount,
			})
		}
	}

	order, err := h.service.UpdateOrder(r.Context(), update)
	if err != nil {
		log.Error().Err(err).Str("order_id", requestPayload.OrderID).Msg("Failed to update order via service")
		respondWithServiceError(w, err, "Failed to update order")
		return
	}

	respondWithJSON(w, http.StatusOK, UpdateOrderResponse{
		Success: true,
		Order:   order,
		Message: "Order updated successfully",
	})
}

func (h *AdminHandler) handleVerifyOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		log.Warn().Msg("Missing orderId query parameter")
		respondWithError(w, http.StatusBadRequest, "orderId parameter is required")
		return
	}

	verification, err := h.service.VerifyOrder(r.Context(), orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("Failed to verify order via service")
		if mapErrorToStatusCode(err) == http.StatusNotFound {
			respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
				"success":     false,
				"orderExists": false,
				"error":       "Order not found",
			})
			return
		}
		respondWithServiceError(w, err, "Failed to verify order")
		return
	}

	respondWithJSON(w, http.StatusOK, VerifyOrderResponse{Success: true, OrderVerification: verification})
}
