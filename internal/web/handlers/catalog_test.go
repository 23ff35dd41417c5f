package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/physiognomy/internal/catalog"
)

func TestCatalogHandler_List(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default())
	req := httptest.NewRequest("GET", "/api/v1/catalog", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	var result []CategoryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	names := catalog.Default().Names()
	if len(result) != len(names) {
		t.Fatalf("expected %d categories, got %d", len(names), len(result))
	}
	for i, name := range names {
		if result[i].Name != name {
			t.Errorf("category %d: expected %s, got %s", i, name, result[i].Name)
		}
	}
}

func TestCatalogHandler_Get(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default())

	tests := []struct {
		param string
		want  string
	}{
		{"tam_dinh", "tam_dinh"},
		{"Miệng Cằm", "mieng_cam"},
		{"MAT", "mat"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			req := requestWithChiParams(httptest.NewRequest("GET", "/api/v1/catalog/x", nil), map[string]string{"category": tt.param})
			recorder := httptest.NewRecorder()

			handler.Get(recorder, req)

			if recorder.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
			}
			var result CategoryResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if result.Name != tt.want {
				t.Errorf("expected category %s, got %s", tt.want, result.Name)
			}
			if len(result.Rules) == 0 {
				t.Error("expected rules")
			}
		})
	}
}

func TestCatalogHandler_Get_InertRules(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default())
	req := requestWithChiParams(httptest.NewRequest("GET", "/api/v1/catalog/an_duong", nil), map[string]string{"category": "an_duong"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	var result CategoryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	for _, r := range result.Rules {
		if !r.Inert {
			t.Errorf("expected rule on %s to be inert", r.Metric)
		}
	}
}

func TestCatalogHandler_Get_NotFound(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default())
	req := requestWithChiParams(httptest.NewRequest("GET", "/api/v1/catalog/nope", nil), map[string]string{"category": "nope"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
