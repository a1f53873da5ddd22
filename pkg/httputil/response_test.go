package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgenie/leadgenie/internal/domain"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusNotFound, domain.ErrCodeNotFound, "chatbot not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "chatbot not found", resp.Error.Message)
}

func TestErrorFromDomain(t *testing.T) {
	t.Run("app error maps to its status and code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ErrorFromDomain(rec, domain.ValidationError("email", "please enter a valid email"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, domain.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("wrapped app error still maps", func(t *testing.T) {
		rec := httptest.NewRecorder()
		wrapped := domain.NotFoundError("session", "abc")
		ErrorFromDomain(rec, errors.Join(errors.New("context"), wrapped))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error becomes 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ErrorFromDomain(rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, domain.ErrCodeInternal, resp.Error.Code)
		assert.Equal(t, "Internal server error", resp.Error.Message, "internal details are not leaked")
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)

		var appErr *domain.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domain.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane","extra":true}`))
		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}
