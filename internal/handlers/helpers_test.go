package handlers

import (
	"context"
	"testing"
	"time"

	"rentwheels-backend/internal/middleware"
	"rentwheels-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

func withRouteContext(ctx context.Context, rctx *chi.Context) context.Context {
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func newRouteContext(key, value string) *chi.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return rctx
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func withUserClaims(ctx context.Context, claims middleware.UserClaims) context.Context {
	return context.WithValue(ctx, middleware.UserContextKey, claims)
}
