package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

type providerError struct{ status int }

func (e *providerError) Error() string { return fmt.Sprintf("provider returned %d", e.status) }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound, serrors.ErrUnauthorized, serrors.ErrForbidden,
		serrors.ErrBadRequest, serrors.ErrConflict, serrors.ErrInternal,
		serrors.ErrTimeout, serrors.ErrUnavailable, serrors.ErrRateLimited,
		serrors.ErrUnprocessable,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		require.False(t, seen[k.Error()], "duplicate kind %s", k)
		seen[k.Error()] = true
	}
}

func TestErrorString(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message", serrors.With(serrors.ErrBadRequest, "%s is not a PDF document", "TBMT.pdf"), "TBMT.pdf is not a PDF document"},
		{"message and cause", serrors.Wrap(serrors.ErrUnavailable, cause, "model request failed"), "model request failed: connection reset"},
		{"cause only", serrors.Wrap(serrors.ErrUnavailable, cause, ""), "connection reset"},
		{"kind only", serrors.KindOnly(serrors.ErrNotFound), "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsAndAs(t *testing.T) {
	cause := &providerError{status: 429}
	err := fmt.Errorf("could not fill: %w", serrors.Wrap(serrors.ErrRateLimited, cause, "slow down"))

	require.ErrorIs(t, err, serrors.ErrRateLimited)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrUnavailable)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrRateLimited, k)

	var pe *providerError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 429, pe.status)

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, "slow down", se.Message())
	require.Equal(t, cause, se.Cause())
	require.Equal(t, serrors.ErrRateLimited, se.Kind())
}

func TestKindOf(t *testing.T) {
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(errors.New("boom")))
	require.Equal(t, serrors.ErrNotFound, serrors.KindOf(serrors.ErrNotFound))
	require.Equal(t, serrors.ErrConflict,
		serrors.KindOf(fmt.Errorf("output: %w", serrors.With(serrors.ErrConflict, "fill is PENDING"))))

	// the outermost kind wins
	inner := serrors.With(serrors.ErrNotFound, "blob missing")
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(serrors.Wrap(serrors.ErrInternal, inner, "could not copy inputs")))
}

func TestMessageOf(t *testing.T) {
	require.Empty(t, serrors.MessageOf(errors.New("boom")))
	require.Empty(t, serrors.MessageOf(serrors.KindOnly(serrors.ErrTimeout)))

	err := serrors.Wrap(serrors.ErrUnprocessable,
		serrors.With(serrors.ErrUnprocessable, "no steps found"), "")
	require.Equal(t, "no steps found", serrors.MessageOf(fmt.Errorf("run: %w", err)))
}

func TestPermanent(t *testing.T) {
	for _, k := range []serrors.Kind{
		serrors.ErrBadRequest, serrors.ErrNotFound, serrors.ErrUnprocessable,
		serrors.ErrUnauthorized, serrors.ErrForbidden,
	} {
		require.True(t, serrors.Permanent(serrors.KindOnly(k)), k.Error())
	}
	for _, k := range []serrors.Kind{
		serrors.ErrRateLimited, serrors.ErrUnavailable, serrors.ErrTimeout,
		serrors.ErrInternal, serrors.ErrConflict,
	} {
		require.False(t, serrors.Permanent(serrors.KindOnly(k)), k.Error())
	}
	require.False(t, serrors.Permanent(errors.New("disk full")))
}
