package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingLocker struct {
	lockErr      error
	unlockErr    error
	locked       int
	unlocked     int
	unlockCtxErr error
}

func (l *recordingLocker) Lock(ctx context.Context) error {
	if l.lockErr != nil {
		return l.lockErr
	}

	l.locked++

	return ctx.Err()
}

func (l *recordingLocker) Unlock(ctx context.Context) error {
	l.unlocked++
	l.unlockCtxErr = ctx.Err()

	if l.unlockCtxErr != nil {
		return l.unlockCtxErr
	}

	return l.unlockErr
}

func TestWithMigrationLockReleasesAfterCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	locker := &recordingLocker{}

	err := withMigrationLock(ctx, locker, zap.NewNop(), func(ctx context.Context) error {
		// SIGTERM arriving while DDL runs
		cancel()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
	require.NoError(t, locker.unlockCtxErr)

	// The next start can take the lock again
	err = withMigrationLock(t.Context(), locker, zap.NewNop(), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, locker.unlocked)
}

func TestWithMigrationLockSkipsWorkWhenLockFails(t *testing.T) {
	t.Parallel()

	locker := &recordingLocker{lockErr: errors.New("connection refused")}
	ran := false

	err := withMigrationLock(t.Context(), locker, zap.NewNop(), func(context.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire migration lock")
	assert.False(t, ran)
	assert.Zero(t, locker.unlocked)
}

func TestWithMigrationLockLogsUnlockFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	locker := &recordingLocker{unlockErr: errors.New("broken pipe")}

	err := withMigrationLock(t.Context(), locker, zap.New(core), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Failed to release migration lock").Len())
}
