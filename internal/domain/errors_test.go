package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransientError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransientError{Cause: cause}

	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	// Wrapping at a boundary keeps the classification.
	wrapped := fmt.Errorf("reserve seat: %w", err)
	assert.ErrorIs(t, wrapped, ErrTransient)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrNoCapacity, ErrFlightNotFound)
	assert.NotErrorIs(t, ErrNoCapacity, ErrTransient)
	assert.NotErrorIs(t, ErrFlightNotFound, ErrTransient)
}
