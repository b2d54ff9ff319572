package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values without a
// full router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithIdentity places a caller identity on the request, bypassing the
// token middleware.
func WithIdentity(r *http.Request, userID primitive.ObjectID, role string) *http.Request {
	return r.WithContext(token.WithIdentity(r.Context(), token.Identity{UserID: userID, Role: role}))
}
