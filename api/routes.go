package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// LoginEndpoint issues a JWT for a registered wallet
	LoginEndpoint = "/auth/login"
	// UsersEndpoint is the endpoint for registering and listing users
	UsersEndpoint = "/users"
	// UserRoleEndpoint updates the role of a registered user
	UserURLParam     = "walletAddress"
	UserRoleEndpoint = "/users/{" + UserURLParam + "}/role"
	// ProjectsEndpoint is the endpoint for creating and listing projects
	ProjectsEndpoint = "/projects"
	// ProjectEndpoint is the endpoint to get a single project
	ProjectURLParam = "projectId"
	ProjectEndpoint = "/projects/{" + ProjectURLParam + "}"
	// ProjectProposalsEndpoint creates and lists proposals under a project
	ProjectProposalsEndpoint = ProjectEndpoint + "/proposals"
	// ProposalsEndpoint lists every proposal (admin roles only)
	ProposalsEndpoint = "/proposals"
	// ProposalEndpoint is the endpoint to get the proposal info
	ProposalURLParam = "proposalId"
	ProposalEndpoint = "/proposals/{" + ProposalURLParam + "}"
	// ProposalRevokeEndpoint revokes a proposal (platform owner only)
	ProposalRevokeEndpoint = ProposalEndpoint + "/revoke"
	// VotesEndpoint is the endpoint for submitting and listing ballots.
	// Submission is unauthenticated: the eligibility proof is the
	// credential, and attaching an identity would defeat anonymity.
	VotesEndpoint = ProposalEndpoint + "/votes"
	// TallyEndpoint triggers and retrieves the tally of a proposal
	TallyEndpoint = ProposalEndpoint + "/tally"
)
