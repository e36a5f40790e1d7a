package rest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-tokenomics/internal/api/shared/constants"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Desc() bool {
	return o == OrderDesc
}

func (o Order) Asc() bool {
	return o == OrderAsc
}

// SortOrder converts the order into its store form
func (o Order) SortOrder() store.SortOrder {
	if o.Asc() {
		return store.SortOrderAsc
	}
	return store.SortOrderDesc
}

// PaginationParams holds the common limit and offset query parameters
type PaginationParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset,default=0"`
}

func (p *PaginationParams) normalize(defaultLimit int) error {
	if p.Limit < 0 || p.Offset < 0 {
		return errors.New("limit and offset must not be negative")
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	// Cap limit
	if p.Limit > constants.MAX_PAGE_SIZE {
		p.Limit = constants.MAX_PAGE_SIZE
	}
	return nil
}

// ListProposalsQueryParams holds query parameters for GET /proposals
type ListProposalsQueryParams struct {
	// Filters
	Statuses []string `form:"status"`
	Proposer string   `form:"proposer"`

	PaginationParams
	Order Order `form:"order,default=desc"` // asc or desc (based on created_at)

	statuses []domain.ProposalStatus
}

// ParseListProposalsQuery parses query parameters for GET /proposals
func ParseListProposalsQuery(c *gin.Context) (*ListProposalsQueryParams, error) {
	var params ListProposalsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(constants.DEFAULT_PROPOSALS_LIMIT); err != nil {
		return nil, err
	}

	// Statuses may be repeated or comma separated
	for _, raw := range params.Statuses {
		for _, s := range strings.Split(raw, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			status, err := parseProposalStatus(s)
			if err != nil {
				return nil, err
			}
			params.statuses = append(params.statuses, status)
		}
	}

	if params.Proposer != "" {
		proposer, err := domain.NormalizeAddress(params.Proposer)
		if err != nil {
			return nil, fmt.Errorf("invalid proposer: %s", params.Proposer)
		}
		params.Proposer = proposer
	}

	// Validate order
	if !params.Order.Asc() && !params.Order.Desc() {
		params.Order = OrderDesc
	}

	return &params, nil
}

// ProposalStatuses returns the parsed status filter
func (p *ListProposalsQueryParams) ProposalStatuses() []domain.ProposalStatus {
	return p.statuses
}

func parseProposalStatus(s string) (domain.ProposalStatus, error) {
	switch status := domain.ProposalStatus(s); status {
	case domain.ProposalStatusPending,
		domain.ProposalStatusActive,
		domain.ProposalStatusCanceled,
		domain.ProposalStatusDefeated,
		domain.ProposalStatusSucceeded,
		domain.ProposalStatusQueued,
		domain.ProposalStatusExpired,
		domain.ProposalStatusExecuted:
		return status, nil
	default:
		return "", fmt.Errorf("invalid status: %s", s)
	}
}

// ListVotesQueryParams holds query parameters for GET /proposals/:id/votes
type ListVotesQueryParams struct {
	PaginationParams
}

// ParseListVotesQuery parses query parameters for GET /proposals/:id/votes
func ParseListVotesQuery(c *gin.Context) (*ListVotesQueryParams, error) {
	var params ListVotesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(constants.DEFAULT_VOTES_LIMIT); err != nil {
		return nil, err
	}
	return &params, nil
}

// ListGrantsQueryParams holds query parameters for GET /grants
type ListGrantsQueryParams struct {
	// Filters
	Recipient      string `form:"recipient"`
	Category       string `form:"category"`
	IncludeRevoked bool   `form:"include_revoked,default=false"`

	PaginationParams
}

// ParseListGrantsQuery parses query parameters for GET /grants
func ParseListGrantsQuery(c *gin.Context) (*ListGrantsQueryParams, error) {
	var params ListGrantsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(constants.DEFAULT_GRANTS_LIMIT); err != nil {
		return nil, err
	}

	if params.Recipient != "" {
		recipient, err := domain.NormalizeAddress(params.Recipient)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient: %s", params.Recipient)
		}
		params.Recipient = recipient
	}

	return &params, nil
}

// DistributionStatsQueryParams holds query parameters for GET /distribution/stats
type DistributionStatsQueryParams struct {
	At *time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"` // Reference time, defaults to now
}

// ParseDistributionStatsQuery parses query parameters for GET /distribution/stats
func ParseDistributionStatsQuery(c *gin.Context) (*DistributionStatsQueryParams, error) {
	var params DistributionStatsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ScheduleQueryParams holds query parameters for GET /distribution/schedule/:category
type ScheduleQueryParams struct {
	Months uint64 `form:"months,default=0"` // Minimum number of months to list past the TGE
}

// ParseScheduleQuery parses query parameters for GET /distribution/schedule/:category
func ParseScheduleQuery(c *gin.Context) (*ScheduleQueryParams, error) {
	var params ScheduleQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Months > vesting.MaxScheduleMonths {
		return nil, fmt.Errorf("months must not exceed %d", vesting.MaxScheduleMonths)
	}
	return &params, nil
}

// UpcomingQueryParams holds query parameters for GET /distribution/upcoming
type UpcomingQueryParams struct {
	Months int    `form:"months"`
	Source string `form:"source,default=grants"` // grants or allocations
}

// ParseUpcomingQuery parses query parameters for GET /distribution/upcoming
func ParseUpcomingQuery(c *gin.Context) (*UpcomingQueryParams, error) {
	var params UpcomingQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Months < 0 || params.Months > constants.MAX_UPCOMING_MONTHS {
		return nil, fmt.Errorf("months must be between 0 and %d", constants.MAX_UPCOMING_MONTHS)
	}
	if params.Months == 0 {
		params.Months = domain.DefaultUpcomingLookaheadMonths
	}

	switch params.Source {
	case constants.UPCOMING_SOURCE_GRANTS, constants.UPCOMING_SOURCE_ALLOCATIONS:
	default:
		return nil, fmt.Errorf("invalid source: %s", params.Source)
	}

	return &params, nil
}

// VotingPowerQueryParams holds query parameters for GET /voting-power/:address
type VotingPowerQueryParams struct {
	Strategy string `form:"strategy"`

	strategy *domain.VotingStrategy
}

// ParseVotingPowerQuery parses query parameters for GET /voting-power/:address
func ParseVotingPowerQuery(c *gin.Context) (*VotingPowerQueryParams, error) {
	var params VotingPowerQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Strategy != "" {
		strategy, err := domain.ParseVotingStrategy(params.Strategy)
		if err != nil {
			return nil, fmt.Errorf("invalid strategy: %s", params.Strategy)
		}
		params.strategy = &strategy
	}

	return &params, nil
}

// VotingStrategy returns the requested strategy, or nil for the configured default
func (p *VotingPowerQueryParams) VotingStrategy() *domain.VotingStrategy {
	return p.strategy
}
