package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

func TestHandleServiceErrorTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		err       error
		status    int
		field     string
		wantCause bool
	}{
		{"validation", &service.ValidationError{Field: "email", Message: "El email es requerido"}, http.StatusBadRequest, "email", false},
		{"wrapped validation", fmt.Errorf("create: %w", &service.ValidationError{Field: "items[0].quantity", Message: "x"}), http.StatusBadRequest, "items[0].quantity", false},
		{"category in use", &service.CategoryInUseError{Count: 3}, http.StatusConflict, "", false},
		{"slug taken", service.ErrSlugTaken, http.StatusConflict, "slug", false},
		{"section order", service.ErrSectionOrder, http.StatusBadRequest, "", false},
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest, "", false},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "", false},
		{"not found", fmt.Errorf("load: %w", service.ErrProductNotFound), http.StatusNotFound, "", false},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			handleServiceError(c, tc.err)

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] == nil || body["error"] == "" {
				t.Fatalf("expected error message, got %v", body)
			}
			if tc.field != "" && body["field"] != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, body["field"])
			}
			if tc.wantCause {
				if body["error"] != internalErrorMessage {
					t.Fatalf("internal cause leaked: %v", body["error"])
				}
				if len(c.Errors) != 1 {
					t.Fatalf("expected cause attached to context, got %d errors", len(c.Errors))
				}
			}
		})
	}
}

func TestCategoryInUseBodyCarriesCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleServiceError(c, &service.CategoryInUseError{Count: 3})

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["productCount"] != float64(3) {
		t.Fatalf("expected productCount 3, got %v", body["productCount"])
	}
}

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, ok := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false, "": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := parseUintParam(c, "id")
		if (err == nil) != ok {
			t.Fatalf("parseUintParam(%q): unexpected error state %v", raw, err)
		}
	}
}

func TestIsAPIRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/api/admin/pages", "", true},
		{"/admin", "", false},
		{"/admin", "application/json", true},
		{"/apiary", "", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.accept != "" {
			c.Request.Header.Set("Accept", tc.accept)
		}
		if got := isAPIRequest(c); got != tc.want {
			t.Fatalf("isAPIRequest(%s, %q) = %v, want %v", tc.path, tc.accept, got, tc.want)
		}
	}
}
