package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/voting"
)

// APIConfig type represents the configuration for the API HTTP server.
// The JWT secret is injected here once at startup; nothing in the handlers
// reads it from the environment.
type APIConfig struct {
	Host      string
	Port      int
	Voting    *voting.Service
	JWTSecret string
}

// API type represents the API HTTP server with JWT authentication capabilities.
type API struct {
	router    *chi.Mux
	voting    *voting.Service
	jwtSecret []byte
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Voting == nil {
		return nil, fmt.Errorf("missing voting service")
	}
	if conf.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT secret")
	}
	a := &API{
		voting:    conf.Voting,
		jwtSecret: []byte(conf.JWTSecret),
	}

	// Initialize router
	a.initRouter()
	go func() {
		log.Infow("Starting API server", "host", conf.Host, "port", conf.Port)
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", conf.Host, conf.Port), a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
	return a, nil
}

// NewRouter builds an API instance without binding a listener. Used by
// tests that mount the router on httptest.
func NewRouter(conf *APIConfig) (*API, error) {
	if conf == nil || conf.Voting == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	a := &API{
		voting:    conf.Voting,
		jwtSecret: []byte(conf.JWTSecret),
	}
	a.initRouter()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", LoginEndpoint, "method", "POST")
	a.router.Post(LoginEndpoint, a.login)

	// Public read endpoints and the anonymous ballot submission.
	log.Infow("register handler", "endpoint", ProjectsEndpoint, "method", "GET")
	a.router.Get(ProjectsEndpoint, a.listProjects)
	log.Infow("register handler", "endpoint", ProjectEndpoint, "method", "GET")
	a.router.Get(ProjectEndpoint, a.project)
	log.Infow("register handler", "endpoint", ProjectProposalsEndpoint, "method", "GET")
	a.router.Get(ProjectProposalsEndpoint, a.listProjectProposals)
	log.Infow("register handler", "endpoint", ProposalEndpoint, "method", "GET")
	a.router.Get(ProposalEndpoint, a.proposal)
	log.Infow("register handler", "endpoint", VotesEndpoint, "method", "POST")
	a.router.Post(VotesEndpoint, a.submitVote)
	log.Infow("register handler", "endpoint", VotesEndpoint, "method", "GET")
	a.router.Get(VotesEndpoint, a.listVotes)
	log.Infow("register handler", "endpoint", TallyEndpoint, "method", "GET")
	a.router.Get(TallyEndpoint, a.tally)

	// Authenticated endpoints.
	a.router.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)
		log.Infow("register handler", "endpoint", UsersEndpoint, "method", "POST")
		r.Post(UsersEndpoint, a.registerUser)
		log.Infow("register handler", "endpoint", UsersEndpoint, "method", "GET")
		r.Get(UsersEndpoint, a.listUsers)
		log.Infow("register handler", "endpoint", UserRoleEndpoint, "method", "PUT")
		r.Put(UserRoleEndpoint, a.updateUserRole)
		log.Infow("register handler", "endpoint", ProjectsEndpoint, "method", "POST")
		r.Post(ProjectsEndpoint, a.createProject)
		log.Infow("register handler", "endpoint", ProjectProposalsEndpoint, "method", "POST")
		r.Post(ProjectProposalsEndpoint, a.createProposal)
		log.Infow("register handler", "endpoint", ProposalsEndpoint, "method", "GET")
		r.Get(ProposalsEndpoint, a.listProposals)
		log.Infow("register handler", "endpoint", ProposalRevokeEndpoint, "method", "POST")
		r.Post(ProposalRevokeEndpoint, a.revokeProposal)
		log.Infow("register handler", "endpoint", TallyEndpoint, "method", "POST")
		r.Post(TallyEndpoint, a.tallyProposal)
	})
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
