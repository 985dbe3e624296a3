package solana

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EndpointSource returns the current endpoint list from configuration.
type EndpointSource func() ([]string, error)

// EndpointReloader periodically rereads the endpoint list and swaps it into a Client.
type EndpointReloader struct {
	client   *Client
	source   EndpointSource
	interval time.Duration
	logger   *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewEndpointReloader creates a reloader; call Start to begin polling.
func NewEndpointReloader(client *Client, source EndpointSource, interval time.Duration, logger *zap.Logger) *EndpointReloader {
	return &EndpointReloader{
		client:   client,
		source:   source,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Reload reads the source once. A failing or empty source leaves the
// current list in place.
func (r *EndpointReloader) Reload() error {
	endpoints, err := r.source()
	if err != nil {
		return err
	}
	if len(endpoints) == 0 {
		return errors.New("endpoint source returned an empty list")
	}
	if slices.Equal(endpoints, r.client.Endpoints()) {
		return nil
	}
	r.client.SetEndpoints(endpoints)
	r.logger.Info("RPC endpoints reloaded", zap.Int("count", len(endpoints)))
	return nil
}

// Start launches the polling loop.
func (r *EndpointReloader) Start() {
	if r.interval <= 0 {
		r.logger.Info("RPC endpoint reload disabled")
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := r.Reload(); err != nil {
					r.logger.Warn("RPC endpoint reload failed, keeping previous list", zap.Error(err))
				}
			case <-r.stopCh:
				return
			}
		}
	}()
}

// Stop ends the polling loop and waits for it to exit.
func (r *EndpointReloader) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}
