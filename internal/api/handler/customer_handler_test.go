package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credit-approval/internal/api/handler/dto"
	"credit-approval/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerHandlerRegisterCustomer(t *testing.T) {
	t.Run("registers a customer and returns 201", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, testHandlerLogger())

		registered := &customer.Customer{
			CustomerID:    1,
			FirstName:     "Asha",
			LastName:      "Rao",
			Age:           30,
			PhoneNumber:   "9876543210",
			MonthlySalary: 253000,
			ApprovedLimit: 9100000,
		}
		mockService.On("RegisterCustomer", mock.Anything, "Asha", "Rao", 30, "9876543210", 253000.0).
			Return(registered, nil)

		body := `{"firstName":"Asha","lastName":"Rao","age":30,"phoneNumber":"9876543210","monthlySalary":253000}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(1), resp.CustomerID)
		assert.Equal(t, "9100000.00", resp.ApprovedLimit)
		assert.Nil(t, resp.CreditScore)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects invalid phone number", func(t *testing.T) {
		handler := NewCustomerHandler(new(MockCustomerService), testHandlerLogger())

		body := `{"firstName":"Asha","lastName":"Rao","age":30,"phoneNumber":"12345","monthlySalary":253000}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error.Message, "phoneNumber")
	})

	t.Run("rejects unknown fields in payload", func(t *testing.T) {
		handler := NewCustomerHandler(new(MockCustomerService), testHandlerLogger())

		body := `{"firstName":"Asha","lastName":"Rao","age":30,"phoneNumber":"9876543210","monthlySalary":253000,"creditScore":100}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerGetCustomer(t *testing.T) {
	t.Run("retrieves customer by ID", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, testHandlerLogger())

		score := 90
		mockService.On("GetCustomer", mock.Anything, int64(5)).Return(&customer.Customer{
			CustomerID:  5,
			FirstName:   "Ravi",
			LastName:    "Iyer",
			CreditScore: &score,
		}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/5", nil), "customerID", "5")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(5), resp.CustomerID)
		assert.NotNil(t, resp.CreditScore)
		assert.Equal(t, 90, *resp.CreditScore)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 404 when customer does not exist", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, testHandlerLogger())

		mockService.On("GetCustomer", mock.Anything, int64(404)).
			Return((*customer.Customer)(nil), customer.ErrNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/404", nil), "customerID", "404")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 for non-numeric customer ID", func(t *testing.T) {
		handler := NewCustomerHandler(new(MockCustomerService), testHandlerLogger())

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/abc", nil), "customerID", "abc")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerListCustomers(t *testing.T) {
	mockService := new(MockCustomerService)
	handler := NewCustomerHandler(mockService, testHandlerLogger())

	mockService.On("ListCustomers", mock.Anything).Return([]*customer.Customer{
		{CustomerID: 1, FirstName: "Asha"},
		{CustomerID: 2, FirstName: "Ravi"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()

	handler.ListCustomers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.CustomerResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	mockService.AssertExpectations(t)
}
