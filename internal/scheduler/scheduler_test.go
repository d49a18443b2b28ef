package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestAdd(t *testing.T) {
	logger, _ := test.NewNullLogger()

	t.Run("valid spec registers", func(t *testing.T) {
		s := New(logger, time.Minute)
		require.NoError(t, s.Add("digest", "0 7 * * *", noop))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("empty spec disables", func(t *testing.T) {
		s := New(logger, time.Minute)
		require.NoError(t, s.Add("digest", "", noop))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("invalid spec errors", func(t *testing.T) {
		s := New(logger, time.Minute)
		err := s.Add("digest", "every morning", noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "digest")
		assert.Equal(t, 0, s.Len())
	})
}

func TestWrap(t *testing.T) {
	t.Run("failure is logged", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		s := New(logger, time.Minute)

		s.wrap("digest", func(context.Context) error { return errors.New("boom") })()

		require.Len(t, hook.AllEntries(), 1)
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.Equal(t, "digest", hook.LastEntry().Data["job"])
	})

	t.Run("job receives a deadline", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		s := New(logger, time.Minute)

		var hasDeadline bool
		s.wrap("digest", func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		})()

		assert.True(t, hasDeadline)
	})
}

func TestStartStop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(logger, 0)
	require.NoError(t, s.Add("digest", "@every 1h", noop))

	s.Start()
	ctx := s.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
