package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/screener/pkg/lifecycle"
)

func TestReadiness(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	var started atomic.Int32
	for range 2 {
		lc.OnStartup(func() {
			<-release
			started.Add(1)
		})
	}

	assert.False(t, lc.Ready(), "ready before startup hooks return")

	close(release)
	lc.WaitForStartup()

	assert.Equal(t, int32(2), started.Load())
	assert.True(t, lc.Ready())

	require.NoError(t, lc.Shutdown(time.Second))
	assert.False(t, lc.Ready(), "ready after shutdown began")
}

func TestShutdownRunsHooksAfterCancel(t *testing.T) {
	lc := lifecycle.New()

	var order []string
	done := make(chan struct{})
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		order = append(order, "closed")
		close(done)
	})
	lc.WaitForStartup()

	require.NoError(t, lc.Shutdown(time.Second))
	<-done

	assert.Equal(t, []string{"closed"}, order)
	assert.Error(t, lc.Context().Err())
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	unblock := make(chan struct{})
	defer close(unblock)
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-unblock
	})

	err := lc.Shutdown(20 * time.Millisecond)
	assert.ErrorIs(t, err, lifecycle.ErrShutdownTimeout)

	assert.ErrorIs(t, lc.Shutdown(time.Second), lifecycle.ErrShutdownTimeout, "second call reports the first result")
}

func TestShutdownIdempotent(t *testing.T) {
	lc := lifecycle.New()

	var calls atomic.Int32
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		calls.Add(1)
	})

	require.NoError(t, lc.Shutdown(time.Second))
	require.NoError(t, lc.Shutdown(time.Second))
	assert.Equal(t, int32(1), calls.Load())
}
