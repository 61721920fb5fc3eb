package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMessage(t *testing.T) {
	withCause := NewError("X", "外層訊息", http.StatusBadRequest, errors.New("underlying cause"))
	assert.Equal(t, "underlying cause", withCause.Error())

	withoutCause := NewError("X", "外層訊息", http.StatusBadRequest, nil)
	assert.Equal(t, "外層訊息", withoutCause.Error())
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to fetch recipe details: %w", ErrRecipeNotFound)

	assert.ErrorIs(t, wrapped, ErrRecipeNotFound)
	assert.NotErrorIs(t, wrapped, ErrInvalidRecipeURI)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("欄位缺失")

	assert.Equal(t, "欄位缺失", err.Error())
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("other")))
}
