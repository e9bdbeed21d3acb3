package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role identifiers. Authorization gates on string equality against these.
const (
	RoleUser          = "user"
	RoleProjectAdmin  = "project_admin"
	RolePlatformOwner = "platform_owner"
)

// ValidRole returns true if s is a recognized role identifier.
func ValidRole(s string) bool {
	switch s {
	case RoleUser, RoleProjectAdmin, RolePlatformOwner:
		return true
	}
	return false
}

// Project groups proposals under a single governance scope. CensusRoot and
// CensusSize describe the eligibility snapshot for the project: proposals
// copy CensusSize as their quorum denominator at creation time.
type Project struct {
	ID           uuid.UUID       `json:"id" gorm:"type:text;primaryKey"`
	Owner        string          `json:"owner"`
	TokenAddress string          `json:"tokenAddress"`
	CensusRoot   HexBytes        `json:"censusRoot"`
	CensusSize   uint64          `json:"censusSize"`
	Config       json.RawMessage `json:"config" gorm:"type:text"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (Project) TableName() string {
	return "projects"
}

// User is a registered wallet with an assigned role.
type User struct {
	WalletAddress string    `json:"walletAddress" gorm:"primaryKey"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
