package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").Status)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("nope").Status)
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).Status)
}

func TestInternalDefaultsMessage(t *testing.T) {
	e := Internal("", errors.New("driver error"))
	assert.Equal(t, "internal server error", e.Message)
	assert.Contains(t, e.Error(), "driver error")
}

func TestStatusOfAndMessageOf(t *testing.T) {
	assert.Equal(t, 404, StatusOf(NotFound("missing")))
	assert.Equal(t, "missing", MessageOf(NotFound("missing")))

	// wrapped typed errors still resolve
	wrapped := fmt.Errorf("outer: %w", Validation("bad field"))
	assert.Equal(t, 400, StatusOf(wrapped))
	assert.Equal(t, "bad field", MessageOf(wrapped))

	// untyped errors fall back to 500
	assert.Equal(t, 500, StatusOf(errors.New("plain")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("driver error")
	e := Internal("query failed", cause)
	assert.True(t, errors.Is(e, cause))
}
