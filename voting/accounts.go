package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
)

// User and project management. These are the collaborators around the
// voting core: registration feeds the eligibility census, projects scope
// proposals. All mutating operations gate on the principal's role.

// RegisterUser registers a wallet with a role. Platform owner only.
func (s *Service) RegisterUser(ctx context.Context, principal Principal, walletAddress, role string) (*types.User, error) {
	if principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: empty wallet address", ErrValidation)
	}
	if role == "" {
		role = types.RoleUser
	}
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	user := &types.User{
		WalletAddress: walletAddress,
		Role:          role,
		CreatedAt:     s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: wallet already registered", ErrValidation)
		}
		return nil, err
	}
	return user, nil
}

// User returns a registered user by wallet address.
func (s *Service) User(ctx context.Context, walletAddress string) (*types.User, error) {
	u, err := s.store.User(ctx, walletAddress)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, walletAddress)
	}
	return u, err
}

// Users lists every registered user. Platform owner only.
func (s *Service) Users(ctx context.Context, principal Principal) ([]*types.User, error) {
	if principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	return s.store.ListUsers(ctx)
}

// UpdateUserRole changes a user's role. Platform owner only.
func (s *Service) UpdateUserRole(ctx context.Context, principal Principal, walletAddress, role string) (*types.User, error) {
	if principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.store.UpdateUserRole(ctx, walletAddress, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, walletAddress)
		}
		return nil, err
	}
	return s.store.User(ctx, walletAddress)
}

// CreateProjectParams carries the caller-supplied fields of a new project.
type CreateProjectParams struct {
	Owner        string
	TokenAddress string
	CensusRoot   types.HexBytes
	CensusSize   uint64
	Config       json.RawMessage
}

// CreateProject creates a project. Project admins and the platform owner
// hold this capability.
func (s *Service) CreateProject(ctx context.Context, principal Principal, params CreateProjectParams) (*types.Project, error) {
	if principal.Role != types.RoleProjectAdmin && principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	if params.Owner == "" {
		return nil, fmt.Errorf("%w: empty project owner", ErrValidation)
	}
	project := &types.Project{
		ID:           uuid.New(),
		Owner:        params.Owner,
		TokenAddress: params.TokenAddress,
		CensusRoot:   params.CensusRoot,
		CensusSize:   params.CensusSize,
		Config:       params.Config,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Project returns a project by ID.
func (s *Service) Project(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	p, err := s.store.Project(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	return p, err
}

// Projects lists every project.
func (s *Service) Projects(ctx context.Context) ([]*types.Project, error) {
	return s.store.ListProjects(ctx)
}
