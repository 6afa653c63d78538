package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hotel-occupancy-backend/internal/auth"
	"hotel-occupancy-backend/internal/occupancy"
	"hotel-occupancy-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	manager *occupancy.Manager
	auth    *auth.Service
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, m *occupancy.Manager, a *auth.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		manager: m,
		auth:    a,
		webpush: webpushOptions,
	}
}
