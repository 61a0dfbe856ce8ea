// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/respond"
	"github.com/mc-aweaver/techradar-1/pkg/pagination"
)

func TestOK_WrapsData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"name": "Go"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"name":"Go"}}`, recorder.Body.String())
}

func TestPaginated_IncludesMeta(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []int{1, 2}, pagination.NewMeta(1, 2, 5))

	var body respond.PaginatedEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestError_Validation(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("invalid",
		apperr.FieldError{Field: "email", Message: "is invalid"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "email", body.Details[0].Field)
}

func TestError_HidesUnknownErrors(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password")
}
