package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("Account", "abc"), http.StatusNotFound},
		{"conflict", NewConflictError("self"), http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewConflictError("x")), http.StatusConflict},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewNotFoundError("Post", "p1"), CodeNotFound))
	assert.False(t, IsCode(NewNotFoundError("Post", "p1"), CodeConflict))
	assert.False(t, IsCode(errors.New("x"), CodeNotFound))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "0.00", FormatMinorUnits(0))
	assert.Equal(t, "0.05", FormatMinorUnits(5))
	assert.Equal(t, "123.45", FormatMinorUnits(12345))
	assert.Equal(t, "1000.00", FormatMinorUnits(100000))
}

func TestNewHashUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		h := NewHash()
		require.LessOrEqual(t, len(h), 32)
		_, dup := seen[h]
		require.False(t, dup, "duplicate hash %s", h)
		seen[h] = struct{}{}
	}
}

func TestContactScan(t *testing.T) {
	var c Contact
	require.NoError(t, c.Scan([]byte(`{"phone":"+2348000000000"}`)))
	assert.Equal(t, "+2348000000000", c.Phone)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, Contact{}, c)

	assert.Error(t, c.Scan(42))
}

func TestPostKindValid(t *testing.T) {
	assert.True(t, PostKindProduct.Valid())
	assert.True(t, PostKindService.Valid())
	assert.False(t, PostKind("job").Valid())
}
