package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load months: %w", Clone(ErrNotFound, "month not found"))

	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "month not found", appErr.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(stdErrors.New("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesByCode(t *testing.T) {
	clone := Clone(ErrKeyNotFound, "key users missing")
	assert.True(t, stdErrors.Is(clone, ErrKeyNotFound))
	assert.True(t, stdErrors.Is(fmt.Errorf("ctx: %w", clone), ErrKeyNotFound))
	assert.False(t, stdErrors.Is(clone, ErrNotFound))
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(stdErrors.New("dial tcp"), ErrUpstreamFailure.Code, ErrUpstreamFailure.Status, "generate report")
	assert.Equal(t, "generate report: dial tcp", err.Error())
	assert.EqualError(t, stdErrors.Unwrap(err), "dial tcp")
}
