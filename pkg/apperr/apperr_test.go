package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casatartufo/tartufo/pkg/apperr"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperr.InvalidInput("bad").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, apperr.Unauthenticated("who").StatusCode())
	assert.Equal(t, http.StatusNotFound, apperr.NotFound("gone").StatusCode())
	assert.Equal(t, http.StatusConflict, apperr.Conflict("dup").StatusCode())
}

func TestPrintfConstructors(t *testing.T) {
	err := apperr.InvalidInput("Invalid product or quantity for product ID %d", 42)
	assert.EqualError(t, err, "Invalid product or quantity for product ID 42")
}

func TestAs_ThroughWrapping(t *testing.T) {
	inner := apperr.NotFound("Product not found")
	wrapped := fmt.Errorf("catalog: get product: %w", inner)

	ae, ok := apperr.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Product not found", ae.Message)
	assert.True(t, apperr.IsKind(wrapped, apperr.KindNotFound))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindConflict))
}

func TestAs_ForeignError(t *testing.T) {
	_, ok := apperr.As(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrap_KeepsMessageAndCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := apperr.InvalidInput("Cart cannot be empty").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Cart cannot be empty", err.Message)
	assert.EqualError(t, err, "Cart cannot be empty: disk on fire")
}
