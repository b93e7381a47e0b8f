package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
	"github.com/vasiliy-maslov/catering-service/internal/handler"
	"github.com/vasiliy-maslov/catering-service/internal/notify"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

type MockCateringService struct {
	mock.Mock
}

func (m *MockCateringService) Submit(ctx context.Context, req catering.SubmissionRequest) (*catering.SubmissionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catering.SubmissionResult), args.Error(1)
}

func newCateringRouter(t *testing.T, svc catering.Service) chi.Router {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(handler.CORS)
	handler.NewCateringHandler(svc, cat).RegisterRoutes(router)
	return router
}

const validSubmission = `{
	"package": {"id": "kkc1", "name": "Kaycee's Kitchen #1", "price": 30},
	"guestCount": 20,
	"entrees": [{"name": "Southern Fried Chicken", "category": "Chicken", "price": 0}],
	"sides": [],
	"additionalServices": [],
	"totalPrice": 600,
	"contactInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "eventDate": "2025-06-14"}
}`

func TestCateringHandler_CreateInvoice_Success(t *testing.T) {
	svc := new(MockCateringService)
	customerID := "C1"
	result := &catering.SubmissionResult{
		Success:            true,
		OrderID:            "O1",
		InvoiceID:          "I1",
		CustomerID:         &customerID,
		FormIdempotencyKey: "form-0123456789abcdef",
		EmailNotification:  &notify.Result{Success: true, EmailID: "e1", Message: "sent"},
	}
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(r catering.SubmissionRequest) bool {
		return r.GuestCount == 20 && r.Package != nil && r.Package.ID == "kkc1" &&
			r.ContactInfo.Email == "jane@example.com" && r.TotalPrice == 600
	})).Return(result, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/create-invoice", bytes.NewBufferString(validSubmission))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	newCateringRouter(t, svc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "O1", body["orderId"])
	assert.Equal(t, "I1", body["invoiceId"])
	assert.Equal(t, "C1", body["customerId"])
	assert.Equal(t, "form-0123456789abcdef", body["formIdempotencyKey"])
	svc.AssertExpectations(t)
}

func TestCateringHandler_CreateInvoice_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "malformed_json",
			body:           `{"guestCount":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"success": false},
		},
		{
			name:           "validation",
			body:           `{"guestCount": 0, "contactInfo": {"email": "not-an-email"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Validation failed",
				"details": map[string]interface{}{
					"package":           "is required",
					"guestCount":        "must be at least 1",
					"contactInfo.email": "must be a valid email address",
				},
			},
		},
		{
			name: "platform_error",
			body: validSubmission,
			serviceErr: &catering.SubmissionError{
				State: catering.StateOrderFailed,
				Err: &square.APIError{StatusCode: 400, Errors: []square.ErrorDetail{
					{Category: "INVALID_REQUEST_ERROR", Code: "INVALID_VALUE", Detail: "bad location"},
				}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"success":  false,
				"error":    "square: INVALID_VALUE: bad location",
				"category": "INVALID_REQUEST_ERROR",
				"code":     "INVALID_VALUE",
			},
		},
		{
			name:           "invoice_failure_reports_order",
			body:           validSubmission,
			serviceErr:     &catering.SubmissionError{State: catering.StateInvoiceFailed, OrderID: "O1", Err: errors.New("failed to create invoice: timeout")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Failed to create invoice",
				"details": "failed to create invoice: timeout",
				"orderId": "O1",
			},
		},
		{
			name:           "in_progress",
			body:           validSubmission,
			serviceErr:     catering.ErrSubmissionInProgress,
			expectedStatus: http.StatusConflict,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "An identical submission is already being processed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCateringService)
			if tt.serviceErr != nil {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, tt.serviceErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/create-invoice", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			newCateringRouter(t, svc).ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			for k, v := range tt.expectedBody {
				assert.Equal(t, v, body[k], "field %s", k)
			}
			if tt.serviceErr == nil {
				svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCateringHandler_Options(t *testing.T) {
	svc := new(MockCateringService)
	req := httptest.NewRequest(http.MethodOptions, "/create-invoice", nil)
	rr := httptest.NewRecorder()

	newCateringRouter(t, svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCateringHandler_Catalog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rr := httptest.NewRecorder()

	newCateringRouter(t, new(MockCateringService)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got catalog.Catalog
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got.Packages, 3)
	assert.NotEmpty(t, got.Entrees)
	assert.NotEmpty(t, got.AdditionalServices)
}
