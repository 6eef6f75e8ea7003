package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.NotFound("Product", "1"), http.StatusNotFound},
		{service.BadRequest("bad"), http.StatusBadRequest},
		{service.Unauthorized("no"), http.StatusUnauthorized},
		{service.Forbidden("no"), http.StatusForbidden},
		{service.Conflict("dup"), http.StatusConflict},
		{service.Domain("rule"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", service.NotFound("Order", "2")), http.StatusNotFound},
		{errors.New("database is down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.want {
			t.Fatalf("StatusOf(%v) want %d got %d", tc.err, tc.want, got)
		}
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products", nil)

	RespondError(c, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want 500 got %d", w.Code)
	}
	var body struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Success || body.Message != "An unexpected error occurred" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRespondErrorCarriesValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reviews", nil)

	RespondError(c, service.BadRequest("One or more validation errors occurred", "rating must be at most 5"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0] != "rating must be at most 5" {
		t.Fatalf("errors want validation detail got %v", body.Errors)
	}
}

func TestRespondErrorWithMsgUsesGivenMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/authz/policies", nil)

	RespondErrorWithMsg(c, http.StatusServiceUnavailable, "Authorization is unavailable", errors.New("casbin: adapter closed"))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status want 503 got %d", w.Code)
	}
	var body struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Success || body.Message != "Authorization is unavailable" || len(body.Errors) != 0 {
		t.Fatalf("unexpected body %+v", body)
	}
}
