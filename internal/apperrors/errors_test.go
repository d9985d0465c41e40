package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsSentinelAndCause(t *testing.T) {
	cause := errors.New("pool closed")
	err := Wrap(ErrNoFeatureData, cause)

	assert.Equal(t, "NO_FEATURE_DATA", err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrNoFeatureData.Message, err.Error())
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "amount must be positive")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, "amount must be positive", err.Message)
	assert.Equal(t, "Invalid input", ErrInvalidInput.Message)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrPortfolioNotFound)
	assert.Equal(t, "PORTFOLIO_NOT_FOUND", As(wrapped).Code)

	plain := errors.New("boom")
	got := As(plain)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	assert.ErrorIs(t, got, plain)
}
