package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

// LoginRequest asks for a JWT for a registered wallet.
type LoginRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token    string    `json:"token"`
	Role     string    `json:"role"`
	ExpireAt time.Time `json:"expireAt"`
}

// RegisterUserRequest registers a wallet with an optional role
// (defaults to "user").
type RegisterUserRequest struct {
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role,omitempty"`
}

// UpdateRoleRequest changes the role of a registered user.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// CreateProjectRequest creates a governance project. CensusRoot and
// CensusSize describe the eligibility snapshot for its proposals.
type CreateProjectRequest struct {
	Owner        string          `json:"owner"`
	TokenAddress string          `json:"tokenAddress"`
	CensusRoot   types.HexBytes  `json:"censusRoot"`
	CensusSize   uint64          `json:"censusSize"`
	Config       json.RawMessage `json:"config,omitempty"`
}

// CreateProposalRequest creates a proposal under a project.
type CreateProposalRequest struct {
	Title     string          `json:"title"`
	Choices   json.RawMessage `json:"choices"`
	Model     string          `json:"model"`
	Quorum    float64         `json:"quorum"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
}

// Vote is a ballot submission: an opaque eligibility proof, a commitment to
// the chosen option and the nullifier that prevents credential reuse.
type Vote struct {
	Proof      types.HexBytes `json:"proof"`
	Commitment types.HexBytes `json:"commitment"`
	Nullifier  types.HexBytes `json:"nullifier"`
}

// SubmissionResponse is the persisted ballot as returned to the voter.
type SubmissionResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProposalID uuid.UUID  `json:"proposalId"`
	Nullifier  types.HexBytes `json:"nullifier"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}
