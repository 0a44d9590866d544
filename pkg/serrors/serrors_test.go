package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"checker/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrInvalidFormat,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrRateLimited,
		serrors.ErrNetwork,
		serrors.ErrMalformedResponse,
		serrors.ErrNoValidCredentials,
		serrors.ErrCancelled,
		serrors.ErrBadRequest,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection reset")

	e1 := serrors.With(serrors.ErrRateLimited, "throttled after %d attempts", 3)
	require.Equal(t, "throttled after 3 attempts", e1.Error())

	e2 := serrors.Wrap(serrors.ErrNetwork, base, "fetching balance")
	require.Equal(t, "fetching balance: connection reset", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrUnauthorized)
	require.Equal(t, "Unauthorized", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrForbidden, base, "validating")

	require.ErrorIs(t, e, serrors.ErrForbidden)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized, "errors.Is should not match a different kind")
}

func TestAsMatchesWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNetwork, base, "dialing")

	var got customError
	require.ErrorAs(t, e, &got)
	require.Equal(t, base.msg, got.msg)
}

func TestIsSurvivesFurtherWrapping(t *testing.T) {
	e := fmt.Errorf("could not validate credential: %w",
		serrors.With(serrors.ErrUnauthorized, "credential rejected"))

	require.ErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestClassification(t *testing.T) {
	require.Equal(t, "Unauthorized",
		serrors.Classification(serrors.KindOnly(serrors.ErrUnauthorized)))
	require.Equal(t, "RateLimited",
		serrors.Classification(fmt.Errorf("wrapped: %w", serrors.KindOnly(serrors.ErrRateLimited))))

	// errors without a semantic kind fall back to NetworkError
	require.Equal(t, "NetworkError", serrors.Classification(errors.New("dial tcp: i/o timeout")))
}

func TestKindOf(t *testing.T) {
	k, ok := serrors.KindOf(serrors.With(serrors.ErrInvalidFormat, "too short"))
	require.True(t, ok)
	require.Equal(t, serrors.ErrInvalidFormat, k)

	_, ok = serrors.KindOf(errors.New("plain"))
	require.False(t, ok)
}
