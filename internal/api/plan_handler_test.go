package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planRoutes(r chi.Router) {
	r.Get("/api/plans/{operation}", NewPlanHandler(nil).GetPlan)
}

func TestPlanHandler_GetPlan(t *testing.T) {
	rec := serve(t, "", planRoutes, http.MethodGet, "/api/plans/multiplication?a=47&b=36", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Operation string `json:"operation"`
		Answer    string `json:"answer"`
		Detail    struct {
			Product int `json:"product"`
		} `json:"detail"`
		Steps []struct {
			Kind     string `json:"kind"`
			Expected string `json:"expected"`
		} `json:"steps"`
	}
	decodeBody(t, rec, &resp)

	assert.Equal(t, "multiplication", resp.Operation)
	assert.Equal(t, "1692", resp.Answer)
	assert.Equal(t, 1692, resp.Detail.Product)
	require.NotEmpty(t, resp.Steps)
	for _, s := range resp.Steps {
		assert.NotEmpty(t, s.Expected, "multiplication has no action targets")
	}
}

func TestPlanHandler_AcceptsSymbols(t *testing.T) {
	rec := serve(t, "", planRoutes, http.MethodGet, "/api/plans/div?a=144&b=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Operation string `json:"operation"`
		Answer    string `json:"answer"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "division", resp.Operation)
	assert.Equal(t, "12", resp.Answer)
}

func TestPlanHandler_DivisionLargeDivisor(t *testing.T) {
	rec := serve(t, "", planRoutes, http.MethodGet,
		"/api/plans/division?a=9223372036854775807&b=4611686018427387904", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Answer string `json:"answer"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "1 R 4611686018427387903", resp.Answer)
}

func TestPlanHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unknown operation", "/api/plans/modulo?a=1&b=2"},
		{"missing operand", "/api/plans/addition?a=12"},
		{"non-integer operand", "/api/plans/addition?a=12&b=x"},
		{"factor out of range", "/api/plans/multiplication?a=5&b=47"},
		{"negative difference", "/api/plans/subtraction?a=3&b=30"},
		{"division by zero", "/api/plans/division?a=10&b=0"},
		{"sum overflows", "/api/plans/addition?a=9223372036854775807&b=1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, "", planRoutes, http.MethodGet, tc.path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeError(t, rec).Error)
		})
	}
}
