// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/middleware"
	requestutil "github.com/mc-aweaver/techradar-1/internal/platform/request"
	"github.com/mc-aweaver/techradar-1/internal/platform/respond"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
)

// AdminHandler exposes the singleton admin account.
type AdminHandler struct {
	authService *Service
}

// NewAdminHandler constructs a new [AdminHandler].
func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{authService: service}
}

// Routes mounts under /admin.
//
// # Endpoints
//   - GET /            : Public contact card of the admin.
//   - PUT /users/{id}  : Transfer the admin flag (admin only).
func (handler *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getAdmin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Put("/users/{id}", handler.grantAdmin)
	})

	return router
}

/*
GET /api/v1/admin

Response:
  - 200: Contact: The admin's public profile
  - 500: MISSING_ADMIN_ACCOUNT when the deployment has no admin
*/
func (handler *AdminHandler) getAdmin(writer http.ResponseWriter, request *http.Request) {
	admin, err := handler.authService.Admin(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ContactOf(admin))
}

/*
PUT /api/v1/admin/users/{id}

Description: Moves the admin flag to the given account. The caller loses
it in the same transaction.

Response:
  - 200: Contact: The new admin
  - 404: ErrNotFound: Unknown user
*/
func (handler *AdminHandler) grantAdmin(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	v := &validate.Validator{}
	if err := v.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.GrantAdmin(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ContactOf(admin))
}
