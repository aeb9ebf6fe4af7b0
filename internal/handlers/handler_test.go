// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sustudio/internal/models"
)

// fakeBrands is an in-memory BrandStore for handler tests.
type fakeBrands struct {
	brand  *models.BrandProfile
	getErr error
}

func (f *fakeBrands) Get(ctx context.Context) (*models.BrandProfile, error) {
	return f.brand, f.getErr
}

func (f *fakeBrands) Save(ctx context.Context, b *models.BrandProfile) (*models.BrandProfile, error) {
	saved := *b
	if f.brand != nil {
		saved.ID = f.brand.ID
	} else {
		saved.ID = uuid.New()
	}
	f.brand = &saved
	return &saved, nil
}

func testBrand() *models.BrandProfile {
	return &models.BrandProfile{
		ID:          uuid.New(),
		Name:        "SU Controle",
		Description: "Gestão financeira simplificada.",
		Colors:      []string{"#ff6e40", "#1a1a2e", "#f0f0f0"},
	}
}

// jsonRequest builds a request with a JSON-encoded body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withURLParam injects a chi route parameter so handlers can be called
// without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals a recorder's JSON response into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}
