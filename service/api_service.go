// Package service wires the storage, voting core and HTTP API together and
// manages their lifecycle.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/zkgov/ballotbox/api"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/voting"
)

// APIService represents a service that manages the HTTP API server.
type APIService struct {
	storage   *storage.Storage
	voting    *voting.Service
	api       *api.API
	mu        sync.Mutex
	cancel    context.CancelFunc
	host      string
	port      int
	jwtSecret string
}

// NewAPI creates a new APIService instance on an existing storage.
func NewAPI(store *storage.Storage, host string, port int, jwtSecret string) *APIService {
	return &APIService{
		storage:   store,
		voting:    voting.New(store, voting.KeccakVerifier{}),
		host:      host,
		port:      port,
		jwtSecret: jwtSecret,
	}
}

// Voting returns the underlying voting service.
func (as *APIService) Voting() *voting.Service {
	return as.voting
}

// Start begins the API server. It returns an error if the service
// is already running or if it fails to start.
func (as *APIService) Start(ctx context.Context) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		return fmt.Errorf("service already running")
	}

	_, as.cancel = context.WithCancel(ctx)

	var err error
	as.api, err = api.New(&api.APIConfig{
		Host:      as.host,
		Port:      as.port,
		Voting:    as.voting,
		JWTSecret: as.jwtSecret,
	})
	if err != nil {
		as.cancel = nil
		return fmt.Errorf("failed to start API server: %w", err)
	}

	return nil
}

// Stop halts the API server and closes the storage.
func (as *APIService) Stop() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		as.cancel()
		as.cancel = nil
	}
	_ = as.storage.Close()
}

// HostPort returns the host and port of the API server.
func (as *APIService) HostPort() (string, int) {
	return as.host, as.port
}
