package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/common/retry"
)

func fastConfig(attempts int) retry.Config {
	return retry.Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("preview backend unavailable")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("timeout")
	err := retry.Do(context.Background(), fastConfig(3), func() error {
		calls++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	sentinel := errors.New("unknown query")
	err := retry.Do(context.Background(), fastConfig(5), func() error {
		calls++
		return retry.Permanent(sentinel)
	})
	require.ErrorIs(t, err, sentinel)
	assert.False(t, retry.IsPermanent(err), "Do unwraps the permanent marker")
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := retry.Do(ctx, fastConfig(3), func() error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, retry.Permanent(nil))
}
