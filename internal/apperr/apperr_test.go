package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("Sweet", 7)))
	assert.Equal(t, KindInsufficientStock, KindOf(InsufficientStock(3, 5)))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("no")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindInternal, KindOf(Internal("broken")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("purchase: %w", InsufficientStock(3, 5))
	assert.Equal(t, KindInsufficientStock, KindOf(err))
	assert.True(t, IsKind(err, KindInsufficientStock))

	var ise *InsufficientStockError
	assert.True(t, errors.As(err, &ise))
	assert.Equal(t, 3, ise.Available)
}

func TestMessages(t *testing.T) {
	assert.EqualError(t, NotFound("Sweet", 42), "Sweet not found with id: 42")
	assert.EqualError(t, InsufficientStock(95, 150), "Insufficient quantity available. Available: 95, Requested: 150")
	assert.EqualError(t, Validation("%s quantity must be greater than zero", "Purchase"), "Purchase quantity must be greater than zero")
}
