package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// CreateProposalRequest represents the request body for creating a governance proposal
type CreateProposalRequest struct {
	Proposer                string          `json:"proposer"`
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	QuorumPercent           *uint64         `json:"quorum_percent,omitempty"`
	RequiredMajorityPercent *uint64         `json:"required_majority_percent,omitempty"`
	VotingStrategy          string          `json:"voting_strategy,omitempty"`
	StartTime               time.Time       `json:"start_time"`
	EndTime                 time.Time       `json:"end_time"`
	Metadata                json.RawMessage `json:"metadata,omitempty"`
}

// Validate validates the create proposal request
func (r *CreateProposalRequest) Validate() error {
	if _, err := domain.NormalizeAddress(r.Proposer); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid proposer: %s", r.Proposer))
	}

	if strings.TrimSpace(r.Title) == "" {
		return apierrors.NewValidationError("title is required")
	}
	if len(r.Title) > constants.MAX_TITLE_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("title exceeds %d characters", constants.MAX_TITLE_LENGTH))
	}
	if len(r.Description) > constants.MAX_DESCRIPTION_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("description exceeds %d bytes", constants.MAX_DESCRIPTION_LENGTH))
	}

	if r.QuorumPercent != nil && *r.QuorumPercent > 100 {
		return apierrors.NewValidationError("quorum_percent must be between 0 and 100")
	}
	if r.RequiredMajorityPercent != nil && (*r.RequiredMajorityPercent == 0 || *r.RequiredMajorityPercent > 100) {
		return apierrors.NewValidationError("required_majority_percent must be between 1 and 100")
	}

	if r.VotingStrategy != "" {
		if _, err := domain.ParseVotingStrategy(r.VotingStrategy); err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid voting_strategy: %s", r.VotingStrategy))
		}
	}

	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return apierrors.NewValidationError("start_time and end_time are required")
	}
	if !r.EndTime.After(r.StartTime) {
		return apierrors.NewValidationError("end_time must be after start_time")
	}

	if len(r.Metadata) > 0 {
		if len(r.Metadata) > constants.MAX_METADATA_BYTES {
			return apierrors.NewValidationError(fmt.Sprintf("metadata exceeds %d bytes", constants.MAX_METADATA_BYTES))
		}
		if !json.Valid(r.Metadata) {
			return apierrors.NewValidationError("metadata must be valid JSON")
		}
	}

	return nil
}

// CastVoteRequest represents the request body for casting a vote
type CastVoteRequest struct {
	Voter   string `json:"voter"`
	Support string `json:"support"`
}

// Validate validates the cast vote request
func (r *CastVoteRequest) Validate() error {
	if _, err := domain.NormalizeAddress(r.Voter); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid voter: %s", r.Voter))
	}
	if _, err := domain.ParseVoteSupport(r.Support); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid support: %s. Must be one of for, against, abstain", r.Support))
	}
	return nil
}

// CancelProposalRequest represents the request body for canceling a proposal
type CancelProposalRequest struct {
	Caller string `json:"caller"`
}

// Validate validates the cancel proposal request
func (r *CancelProposalRequest) Validate() error {
	if _, err := domain.NormalizeAddress(r.Caller); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid caller: %s", r.Caller))
	}
	return nil
}

// SetDelegationRequest represents the request body for delegating voting power
type SetDelegationRequest struct {
	Delegatee string `json:"delegatee"`
}

// Validate validates the delegation request
func (r *SetDelegationRequest) Validate() error {
	if _, err := domain.NormalizeAddress(r.Delegatee); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid delegatee: %s", r.Delegatee))
	}
	return nil
}

// CreateGrantRequest represents the request body for creating a vesting grant.
// Amount is given in base units.
type CreateGrantRequest struct {
	Recipient              string    `json:"recipient"`
	Category               string    `json:"category"`
	Amount                 string    `json:"amount"`
	Start                  time.Time `json:"start"`
	CliffSeconds           uint64    `json:"cliff_seconds"`
	DurationSeconds        uint64    `json:"duration_seconds"`
	ReleaseIntervalSeconds uint64    `json:"release_interval_seconds"`
}

// Validate validates the create grant request
func (r *CreateGrantRequest) Validate() error {
	if _, err := domain.NormalizeAddress(r.Recipient); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid recipient: %s", r.Recipient))
	}
	if strings.TrimSpace(r.Category) == "" {
		return apierrors.NewValidationError("category is required")
	}

	a, err := amount.Parse(r.Amount)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid amount: %s", r.Amount))
	}
	if a.IsZero() {
		return apierrors.NewValidationError("amount must be positive")
	}

	if r.Start.IsZero() {
		return apierrors.NewValidationError("start is required")
	}
	if r.CliffSeconds > r.DurationSeconds {
		return apierrors.NewValidationError("cliff_seconds must not exceed duration_seconds")
	}

	return nil
}
