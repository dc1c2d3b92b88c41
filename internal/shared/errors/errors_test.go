package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTypeUnwraps(t *testing.T) {
	err := fmt.Errorf("bootstrap: %w", Conflictf("shared universe %d already exists", 1))

	assert.Equal(t, ErrorTypeConflict, GetType(err))
	assert.True(t, Is(err, ErrorTypeConflict))
	assert.False(t, Is(nil, ErrorTypeConflict))
	assert.Equal(t, ErrorTypeInternal, GetType(errors.New("plain")))
}

func TestWrappedCauseIsReachable(t *testing.T) {
	cause := errors.New("sector 4 has no exits")
	err := WrapInvariant("generated universe failed verification", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generated universe failed verification: sector 4 has no exits", err.Error())
	assert.Equal(t, "universe 3 not found", NotFoundf("universe %d not found", 3).Error())
}
