package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("aggregate profile: %w", NotFound("github", "get user"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Equal(t, ErrNotFound, KindOf(err))
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := Upstream("jooble", "search", 502, io.ErrUnexpectedEOF)

	require.True(t, errors.Is(err, ErrUpstreamUnavailable))
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, 502, typed.StatusCode)
	assert.Equal(t, "jooble: upstream unavailable (search): status 502: unexpected EOF", err.Error())
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Nil(t, KindOf(errors.New("boom")))
	assert.Equal(t, ErrMisconfigured, KindOf(Misconfigured("gemini", "load key", nil)))
	assert.Equal(t, ErrParseFailure, KindOf(Parse("gemini", "decode", nil)))
	assert.Equal(t, ErrInvalidInput, KindOf(Invalid("store", "create", nil)))
}
