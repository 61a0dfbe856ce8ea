// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/middleware"
	requestutil "github.com/mc-aweaver/techradar-1/internal/platform/request"
	"github.com/mc-aweaver/techradar-1/internal/platform/respond"
	"github.com/mc-aweaver/techradar-1/pkg/pagination"
)

// Handler implements the HTTP layer for topics.
type Handler struct {
	service *Service
}

// NewHandler constructs a topic [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving /topics.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listTopics)
	router.Get("/index", handler.getIndex)
	router.Get("/{slug}", handler.getTopic)

	// Signed-in users
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createTopic)
		authed.Patch("/{slug}", handler.updateTopic)
		authed.Delete("/{slug}", handler.deleteTopic)
	})

	return router
}

/*
GET /api/v1/topics.

Query:
  - q: case-insensitive name prefix
  - creator: creator user ID
  - page, limit: pagination
*/
func (handler *Handler) listTopics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CreatorID: requestutil.Query(request, "creator"),
		Query:     requestutil.Query(request, "q"),
	}

	topics, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, topics, paginationParams.Meta(total))
}

/*
GET /api/v1/topics/index.

Response:
  - 200: []{letter, topics}: every topic grouped by first letter
*/
func (handler *Handler) getIndex(writer http.ResponseWriter, request *http.Request) {
	index, err := handler.service.Index(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, index)
}

func (handler *Handler) getTopic(writer http.ResponseWriter, request *http.Request) {
	topic, err := handler.service.Get(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, topic)
}

type createTopicRequest struct {
	Name                string  `json:"name"`
	Username            *string `json:"username"`
	TwitterUsername     *string `json:"twitter_username"`
	TwitterProfileImage *string `json:"twitter_profile_image"`
}

/*
POST /api/v1/topics.

Response:
  - 201: Topic
  - 400: ErrValidation
  - 401: ErrUnauthorized
*/
func (handler *Handler) createTopic(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTopicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.Create(request.Context(), userID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, topic)
}

type updateTopicRequest struct {
	Name                *string `json:"name"`
	TwitterUsername     *string `json:"twitter_username"`
	TwitterProfileImage *string `json:"twitter_profile_image"`
}

/*
PATCH /api/v1/topics/{slug}.

Response:
  - 200: Topic, with its new slug when renamed
  - 403: ErrForbidden: caller is neither creator nor admin
  - 404: ErrNotFound
*/
func (handler *Handler) updateTopic(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTopicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.Update(request.Context(), claims, requestutil.Param(request, "slug"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, topic)
}

func (handler *Handler) deleteTopic(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), claims, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
