// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/middleware"
	requestutil "github.com/mc-aweaver/techradar-1/internal/platform/request"
	"github.com/mc-aweaver/techradar-1/internal/platform/respond"
	"github.com/mc-aweaver/techradar-1/pkg/pagination"
	"github.com/mc-aweaver/techradar-1/pkg/query"
)

// Handler implements the HTTP layer for radars and blips.
type Handler struct {
	service *Service
}

// NewHandler constructs a radar [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving /radars.
//
// Reading a radar only needs its uuid; every other route needs a signed-in
// user, and mutations need the owner.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/{uuid}", handler.getRadar)
	router.Get("/{uuid}/blips", handler.listBlips)

	// Owner
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/", handler.listRadars)
		authed.Post("/", handler.createRadar)
		authed.Patch("/{uuid}", handler.updateRadar)
		authed.Delete("/{uuid}", handler.deleteRadar)

		authed.Post("/{uuid}/blips", handler.addBlip)
		authed.Patch("/{uuid}/blips/{id}", handler.updateBlip)
		authed.Delete("/{uuid}/blips/{id}", handler.removeBlip)
	})

	return router
}

// # Radar Endpoints

/*
GET /api/v1/radars.

Response:
  - 200: []Radar: the caller's radars, newest first
*/
func (handler *Handler) listRadars(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	radars, total, err := handler.service.ListByOwner(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, radars, paginationParams.Meta(total))
}

/*
GET /api/v1/radars/{uuid}.

Response:
  - 200: Radar with quadrants and blips
  - 404: ErrNotFound
*/
func (handler *Handler) getRadar(writer http.ResponseWriter, request *http.Request) {
	radar, err := handler.service.Get(request.Context(), requestutil.Param(request, "uuid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, radar)
}

type createRadarRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) createRadar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRadarRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	radar, err := handler.service.Create(request.Context(), userID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, radar)
}

type updateRadarRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (handler *Handler) updateRadar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRadarRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	radar, err := handler.service.Update(request.Context(), userID, requestutil.Param(request, "uuid"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, radar)
}

func (handler *Handler) deleteRadar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.Param(request, "uuid")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Blip Endpoints

/*
GET /api/v1/radars/{uuid}/blips.

Query:
  - ring: optional comma-separated ring filter, e.g. ring=adopt,trial

Response:
  - 200: []QuadrantBlips
  - 404: ErrNotFound
*/
func (handler *Handler) listBlips(writer http.ResponseWriter, request *http.Request) {
	rings := query.Allowed(requestutil.Query(request, "ring"), Rings...)

	quadrants, err := handler.service.ListBlips(request.Context(), requestutil.Param(request, "uuid"), rings...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, quadrants)
}

type addBlipRequest struct {
	Topic    string `json:"topic"`
	Quadrant string `json:"quadrant"`
	Ring     string `json:"ring"`
	Notes    string `json:"notes"`
}

/*
POST /api/v1/radars/{uuid}/blips.

Request:
  - topic: topic slug
  - quadrant, ring: grid position
  - notes: markdown

Response:
  - 201: Blip
  - 400: ErrValidation: unknown topic or off-grid position
  - 403: ErrForbidden: caller does not own the radar
  - 409: ErrConflict: topic already on the radar
*/
func (handler *Handler) addBlip(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addBlipRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blip, err := handler.service.AddBlip(request.Context(), userID, requestutil.Param(request, "uuid"), AddBlipInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, blip)
}

type updateBlipRequest struct {
	Quadrant *string `json:"quadrant"`
	Ring     *string `json:"ring"`
	Notes    *string `json:"notes"`
}

func (handler *Handler) updateBlip(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateBlipRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blip, err := handler.service.UpdateBlip(request.Context(), userID,
		requestutil.Param(request, "uuid"), requestutil.Param(request, "id"), UpdateBlipInput(input),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, blip)
}

func (handler *Handler) removeBlip(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveBlip(request.Context(), userID, requestutil.Param(request, "uuid"), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
