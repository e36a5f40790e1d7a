package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-tokenomics/internal/api/middleware"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/dto"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/executor"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetDistributionStats returns the circulating and locked supply of the distribution
	// GET /api/v1/distribution/stats?at=<RFC3339 timestamp>
	GetDistributionStats(c *gin.Context)

	// GetAllocationSchedule returns the monthly release schedule of an allocation
	// GET /api/v1/distribution/schedule/:category?months=<months>
	GetAllocationSchedule(c *gin.Context)

	// GetUpcomingReleases returns the releases of the coming months grouped by calendar month
	// GET /api/v1/distribution/upcoming?months=<months>&source=grants|allocations
	GetUpcomingReleases(c *gin.Context)

	// GetVotingPower returns the voting power of an address
	// GET /api/v1/voting-power/:address?strategy=simple|quadratic|weighted
	GetVotingPower(c *gin.Context)

	// SetDelegation delegates the voting power of an address (requires authentication)
	// PUT /api/v1/delegations/:address
	SetDelegation(c *gin.Context)

	// ClearDelegation removes the delegation of an address (requires authentication)
	// DELETE /api/v1/delegations/:address
	ClearDelegation(c *gin.Context)

	// ListProposals retrieves proposals with optional filters
	// GET /api/v1/proposals?status=<status1>,<status2>&proposer=<address>&limit=<limit>&offset=<offset>&order=<order>
	ListProposals(c *gin.Context)

	// GetProposal retrieves a single proposal
	// GET /api/v1/proposals/:id
	GetProposal(c *gin.Context)

	// ListVotes retrieves the votes of a proposal
	// GET /api/v1/proposals/:id/votes?limit=<limit>&offset=<offset>
	ListVotes(c *gin.Context)

	// CreateProposal creates a proposal (requires authentication)
	// POST /api/v1/proposals
	CreateProposal(c *gin.Context)

	// CastVote casts a vote on a proposal (requires authentication)
	// POST /api/v1/proposals/:id/votes
	CastVote(c *gin.Context)

	// QueueProposal queues a succeeded proposal (requires authentication)
	// POST /api/v1/proposals/:id/queue
	QueueProposal(c *gin.Context)

	// ExecuteProposal executes a queued proposal once its timelock passed (requires authentication)
	// POST /api/v1/proposals/:id/execute
	ExecuteProposal(c *gin.Context)

	// CancelProposal cancels a proposal on behalf of its proposer (requires authentication)
	// POST /api/v1/proposals/:id/cancel
	CancelProposal(c *gin.Context)

	// ListGrants retrieves vesting grants with optional filters
	// GET /api/v1/grants?recipient=<address>&category=<category>&include_revoked=<bool>&limit=<limit>&offset=<offset>
	ListGrants(c *gin.Context)

	// GetGrant retrieves a single vesting grant
	// GET /api/v1/grants/:id
	GetGrant(c *gin.Context)

	// CreateGrant creates a vesting grant (requires authentication)
	// POST /api/v1/grants
	CreateGrant(c *gin.Context)

	// ReleaseGrant releases the vested tokens of a grant (requires authentication)
	// POST /api/v1/grants/:id/release
	ReleaseGrant(c *gin.Context)

	// RevokeGrant revokes a grant (requires authentication)
	// POST /api/v1/grants/:id/revoke
	RevokeGrant(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// =============================================================================
// Distribution
// =============================================================================

func (h *handler) GetDistributionStats(c *gin.Context) {
	queryParams, err := ParseDistributionStatsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	stats, err := h.executor.GetDistributionStats(c.Request.Context(), queryParams.At)
	if err != nil {
		respondError(c, err, "Failed to get distribution stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *handler) GetAllocationSchedule(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		respondBadRequest(c, "Category is required")
		return
	}

	queryParams, err := ParseScheduleQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	schedule, err := h.executor.GetAllocationSchedule(c.Request.Context(), category, queryParams.Months)
	if err != nil {
		respondError(c, err, "Failed to get allocation schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

func (h *handler) GetUpcomingReleases(c *gin.Context) {
	queryParams, err := ParseUpcomingQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	releases, err := h.executor.GetUpcomingReleases(c.Request.Context(), queryParams.Months, queryParams.Source)
	if err != nil {
		respondError(c, err, "Failed to get upcoming releases")
		return
	}

	c.JSON(http.StatusOK, releases)
}

// =============================================================================
// Voting power
// =============================================================================

func (h *handler) GetVotingPower(c *gin.Context) {
	address := c.Param("address")
	if _, err := domain.NormalizeAddress(address); err != nil {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	queryParams, err := ParseVotingPowerQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	power, err := h.executor.GetVotingPower(c.Request.Context(), address, queryParams.VotingStrategy())
	if err != nil {
		respondError(c, err, "Failed to get voting power")
		return
	}

	c.JSON(http.StatusOK, power)
}

func (h *handler) SetDelegation(c *gin.Context) {
	address := c.Param("address")
	if _, err := domain.NormalizeAddress(address); err != nil {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	var req dto.SetDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid delegation request")
		return
	}
	if !authorizeAddress(c, address) {
		return
	}

	delegation, err := h.executor.SetDelegation(c.Request.Context(), address, req)
	if err != nil {
		respondError(c, err, "Failed to set delegation")
		return
	}

	c.JSON(http.StatusOK, delegation)
}

func (h *handler) ClearDelegation(c *gin.Context) {
	address := c.Param("address")
	if _, err := domain.NormalizeAddress(address); err != nil {
		respondBadRequest(c, "Invalid address", address)
		return
	}
	if !authorizeAddress(c, address) {
		return
	}

	if err := h.executor.ClearDelegation(c.Request.Context(), address); err != nil {
		respondError(c, err, "Failed to clear delegation")
		return
	}

	c.Status(http.StatusNoContent)
}

// =============================================================================
// Proposals
// =============================================================================

func (h *handler) ListProposals(c *gin.Context) {
	queryParams, err := ParseListProposalsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offset := uint64(queryParams.Offset) //nolint:gosec,G115 // offset is validated non-negative
	proposals, err := h.executor.ListProposals(
		c.Request.Context(),
		queryParams.ProposalStatuses(),
		queryParams.Proposer,
		&queryParams.Limit,
		&offset,
		queryParams.Order.SortOrder(),
	)
	if err != nil {
		respondError(c, err, "Failed to list proposals")
		return
	}

	c.JSON(http.StatusOK, proposals)
}

func (h *handler) GetProposal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	proposal, err := h.executor.GetProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get proposal")
		return
	}

	if proposal == nil {
		respondNotFound(c, "Proposal not found")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

func (h *handler) ListVotes(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	queryParams, err := ParseListVotesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offset := uint64(queryParams.Offset) //nolint:gosec,G115 // offset is validated non-negative
	votes, err := h.executor.ListVotes(c.Request.Context(), id, &queryParams.Limit, &offset)
	if err != nil {
		respondError(c, err, "Failed to list votes")
		return
	}

	c.JSON(http.StatusOK, votes)
}

func (h *handler) CreateProposal(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid proposal")
		return
	}
	if !authorizeAddress(c, req.Proposer) {
		return
	}

	proposal, err := h.executor.CreateProposal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create proposal")
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

func (h *handler) CastVote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid vote")
		return
	}
	if !authorizeAddress(c, req.Voter) {
		return
	}

	response, err := h.executor.CastVote(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to cast vote")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) QueueProposal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	proposal, err := h.executor.QueueProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to queue proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

func (h *handler) ExecuteProposal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	proposal, err := h.executor.ExecuteProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to execute proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

func (h *handler) CancelProposal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Proposal ID is required")
		return
	}

	var req dto.CancelProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid cancel request")
		return
	}
	if !authorizeAddress(c, req.Caller) {
		return
	}

	proposal, err := h.executor.CancelProposal(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to cancel proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// =============================================================================
// Vesting grants
// =============================================================================

func (h *handler) ListGrants(c *gin.Context) {
	queryParams, err := ParseListGrantsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offset := uint64(queryParams.Offset) //nolint:gosec,G115 // offset is validated non-negative
	grants, err := h.executor.ListGrants(
		c.Request.Context(),
		queryParams.Recipient,
		queryParams.Category,
		queryParams.IncludeRevoked,
		&queryParams.Limit,
		&offset,
	)
	if err != nil {
		respondError(c, err, "Failed to list grants")
		return
	}

	c.JSON(http.StatusOK, grants)
}

func (h *handler) GetGrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Grant ID is required")
		return
	}

	grant, err := h.executor.GetGrant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get grant")
		return
	}

	if grant == nil {
		respondNotFound(c, "Grant not found")
		return
	}

	c.JSON(http.StatusOK, grant)
}

func (h *handler) CreateGrant(c *gin.Context) {
	var req dto.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid grant")
		return
	}

	grant, err := h.executor.CreateGrant(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create grant")
		return
	}

	c.JSON(http.StatusCreated, grant)
}

func (h *handler) ReleaseGrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Grant ID is required")
		return
	}

	response, err := h.executor.ReleaseGrant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to release grant")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) RevokeGrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Grant ID is required")
		return
	}

	response, err := h.executor.RevokeGrant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to revoke grant")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-tokenomics-api",
	})
}

// authorizeAddress checks that a JWT caller acts as its own subject. API key callers
// are trusted to act on behalf of any address.
func authorizeAddress(c *gin.Context, address string) bool {
	if middleware.AuthType(c) != middleware.AUTH_TYPE_JWT {
		return true
	}

	subject := middleware.AuthSubject(c)
	if subject == "" || !strings.EqualFold(subject, address) {
		respondUnauthorized(c, "Caller does not match the authenticated subject",
			fmt.Sprintf("subject %q cannot act as %s", subject, address))
		return false
	}
	return true
}
