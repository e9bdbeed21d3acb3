package storage

import (
	"context"

	"github.com/zkgov/ballotbox/types"
)

// CreateUser registers a wallet address with a role.
func (s *Storage) CreateUser(ctx context.Context, u *types.User) error {
	return mapErr(s.db.WithContext(ctx).Create(u).Error)
}

// User retrieves a user by wallet address. Returns ErrNotFound if absent.
func (s *Storage) User(ctx context.Context, walletAddress string) (*types.User, error) {
	u := &types.User{}
	err := s.db.WithContext(ctx).
		First(u, "wallet_address = ?", walletAddress).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// ListUsers returns every registered user.
func (s *Storage) ListUsers(ctx context.Context) ([]*types.User, error) {
	var users []*types.User
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error
	return users, mapErr(err)
}

// UpdateUserRole changes the role of a registered user.
func (s *Storage) UpdateUserRole(ctx context.Context, walletAddress, role string) error {
	res := s.db.WithContext(ctx).
		Model(&types.User{}).
		Where("wallet_address = ?", walletAddress).
		Update("role", role)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
