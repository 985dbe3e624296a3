package solana

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEndpointReloader_Reload(t *testing.T) {
	client := NewClient([]string{"http://a"})
	next := []string{"http://b", "http://c"}
	r := NewEndpointReloader(client, func() ([]string, error) { return next, nil }, time.Minute, zap.NewNop())

	require.NoError(t, r.Reload())
	assert.Equal(t, next, client.Endpoints())
}

func TestEndpointReloader_KeepsListOnFailure(t *testing.T) {
	client := NewClient([]string{"http://a"})

	failing := NewEndpointReloader(client, func() ([]string, error) { return nil, errors.New("bad yaml") }, time.Minute, zap.NewNop())
	require.Error(t, failing.Reload())
	assert.Equal(t, []string{"http://a"}, client.Endpoints())

	empty := NewEndpointReloader(client, func() ([]string, error) { return []string{}, nil }, time.Minute, zap.NewNop())
	require.Error(t, empty.Reload())
	assert.Equal(t, []string{"http://a"}, client.Endpoints())
}

func TestEndpointReloader_StartStop(t *testing.T) {
	client := NewClient([]string{"http://a"})
	var calls atomic.Int32
	r := NewEndpointReloader(client, func() ([]string, error) {
		calls.Add(1)
		return []string{"http://b"}, nil
	}, 5*time.Millisecond, zap.NewNop())

	r.Start()
	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	r.Stop()
	r.Stop()

	assert.Equal(t, []string{"http://b"}, client.Endpoints())
}
