package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches by code regardless of message", func(t *testing.T) {
		err := NewDomainError(CodePartyFrozen, "Customer _Test Customer is frozen")

		assert.True(t, errors.Is(err, ErrPartyFrozen))
		assert.False(t, errors.Is(err, ErrPartyDisabled))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", NewDomainError(CodeCreditLimitExceeded, "crossed"))

		assert.True(t, errors.Is(err, ErrCreditLimitExceeded))
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrNotFound))
	})
}

func TestIsValidationFailure(t *testing.T) {
	assert.True(t, IsValidationFailure(NewDomainError(CodeValidation, "bad")))
	assert.True(t, IsValidationFailure(fmt.Errorf("wrap: %w", NewDomainError(CodeCreditLimitExceeded, "crossed"))))
	assert.False(t, IsValidationFailure(ErrPartyFrozen))
	assert.False(t, IsValidationFailure(errors.New("plain")))
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{PageSize: 500, OrderDir: "sideways"}.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	assert.NotNil(t, f.Filters)
	assert.Equal(t, 0, f.Offset())

	f.Page = 3
	assert.Equal(t, 200, f.Offset())
}
