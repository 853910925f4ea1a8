package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfirmationRoundTrip(t *testing.T) {
	ctx := context.Background()
	email := &fakeEmail{}
	svc := NewConfirmationService(&fakeConfirmationRepo{}, email)

	require.NoError(t, svc.RequestCode(ctx, "default", "My Project", "owner@example.com"))
	require.Len(t, email.codes, 1)
	require.Len(t, email.codes[0], 6)

	require.NoError(t, svc.Confirm(ctx, "default", email.codes[0]))

	// A confirmed code cannot be replayed.
	require.ErrorIs(t, svc.Confirm(ctx, "default", email.codes[0]), ErrCodeInvalid)
}

func TestConfirmationWrongCodeAttempts(t *testing.T) {
	ctx := context.Background()
	email := &fakeEmail{}
	svc := NewConfirmationService(&fakeConfirmationRepo{}, email)

	require.NoError(t, svc.RequestCode(ctx, "default", "My Project", "owner@example.com"))

	require.ErrorIs(t, svc.Confirm(ctx, "default", "no"), ErrCodeInvalid)
	require.ErrorIs(t, svc.Confirm(ctx, "default", "no"), ErrCodeInvalid)
	// Third miss exhausts the attempts and burns the code.
	require.ErrorIs(t, svc.Confirm(ctx, "default", "no"), ErrTooManyAttempts)
	require.ErrorIs(t, svc.Confirm(ctx, "default", email.codes[0]), ErrCodeExpired)
}

func TestConfirmationExpiry(t *testing.T) {
	ctx := context.Background()
	email := &fakeEmail{}
	svc := NewConfirmationService(&fakeConfirmationRepo{}, email)
	svc.CodeTTL = time.Nanosecond // effectively expired when stored

	require.NoError(t, svc.RequestCode(ctx, "default", "My Project", "owner@example.com"))
	require.ErrorIs(t, svc.Confirm(ctx, "default", email.codes[0]), ErrCodeExpired)
}

func TestConfirmationResendThrottle(t *testing.T) {
	ctx := context.Background()
	email := &fakeEmail{}
	svc := NewConfirmationService(&fakeConfirmationRepo{}, email)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RequestCode(ctx, "default", "My Project", "owner@example.com"))
	}
	require.ErrorIs(t,
		svc.RequestCode(ctx, "default", "My Project", "owner@example.com"),
		ErrResendThrottled)
}

func TestConfirmationNoCodeRequested(t *testing.T) {
	ctx := context.Background()
	svc := NewConfirmationService(&fakeConfirmationRepo{}, &fakeEmail{})
	require.ErrorIs(t, svc.Confirm(ctx, "default", "123456"), ErrCodeInvalid)
}
