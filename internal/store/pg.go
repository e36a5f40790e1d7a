package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
)

const (
	// DefaultListLimit is used when a list query does not set a limit
	DefaultListLimit = 50
	// MaxListLimit caps the page size of list queries
	MaxListLimit = 500
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults to zero settings
// (10 open, 2 idle, 5 minute lifetime, 10 minute idle time) and keeps idle <= open.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	maxIdleConns = min(maxIdleConns, maxOpenConns)

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

func pageLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// =============================================================================
// Proposals
// =============================================================================

// CreateProposal inserts a new proposal with empty tallies
func (s *pgStore) CreateProposal(ctx context.Context, input CreateProposalInput) (*schema.Proposal, error) {
	now := time.Now().UTC()
	proposal := &schema.Proposal{
		ID:                      input.ID,
		Proposer:                input.Proposer,
		Title:                   input.Title,
		Description:             input.Description,
		ContentHash:             input.ContentHash,
		QuorumPercent:           input.QuorumPercent,
		RequiredMajorityPercent: input.RequiredMajorityPercent,
		VotingStrategy:          input.VotingStrategy,
		SupplySnapshot:          input.SupplySnapshot,
		StartTime:               input.StartTime,
		EndTime:                 input.EndTime,
		Status:                  input.Status,
		Metadata:                input.Metadata,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.db.WithContext(ctx).Create(proposal).Error; err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	return proposal, nil
}

// GetProposal retrieves a proposal by ID
func (s *pgStore) GetProposal(ctx context.Context, id string) (*schema.Proposal, error) {
	var proposal schema.Proposal
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	return &proposal, nil
}

// ListProposals lists proposals matching the filter, newest first by default
func (s *pgStore) ListProposals(ctx context.Context, filter ProposalQueryFilter) ([]*schema.Proposal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Proposal{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Proposer != "" {
		query = query.Where("LOWER(proposer) = LOWER(?)", filter.Proposer)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count proposals: %w", err)
	}

	order := "created_at DESC, id DESC"
	if filter.Order == SortOrderAsc {
		order = "created_at ASC, id ASC"
	}

	var proposals []*schema.Proposal
	err := query.
		Order(order).
		Limit(pageLimit(filter.Limit)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&proposals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list proposals: %w", err)
	}

	return proposals, uint64(total), nil //nolint:gosec,G115
}

// UpdateProposalState updates the status and lifecycle flags of a proposal
func (s *pgStore) UpdateProposalState(ctx context.Context, input UpdateProposalStateInput) (*schema.Proposal, error) {
	var proposal schema.Proposal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ID).
			First(&proposal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: proposal %s", domain.ErrNotFound, input.ID)
			}
			return fmt.Errorf("failed to lock proposal: %w", err)
		}
		if input.ExpectedStatus != "" && proposal.Status != input.ExpectedStatus {
			return fmt.Errorf("%w: proposal %s is %s, expected %s", domain.ErrState, input.ID, proposal.Status, input.ExpectedStatus)
		}

		updates := map[string]interface{}{
			"status":     input.Status,
			"updated_at": time.Now().UTC(),
		}
		if input.Executed != nil {
			updates["executed"] = *input.Executed
		}
		if input.Canceled != nil {
			updates["canceled"] = *input.Canceled
		}
		if input.QueuedEta != nil {
			updates["queued_eta"] = *input.QueuedEta
		}

		if err := tx.Model(&proposal).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update proposal: %w", err)
		}

		return tx.Where("id = ?", input.ID).First(&proposal).Error
	})
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

// ListProposalsForSweep lists non-terminal proposals in ID order, starting after afterID
func (s *pgStore) ListProposalsForSweep(ctx context.Context, afterID string, limit int) ([]*schema.Proposal, error) {
	query := s.db.WithContext(ctx).
		Where("status IN ?", domain.NonTerminalProposalStatuses)
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}

	var proposals []*schema.Proposal
	if err := query.Order("id ASC").Limit(pageLimit(limit)).Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("failed to list proposals for sweep: %w", err)
	}

	return proposals, nil
}

// =============================================================================
// Votes
// =============================================================================

// RecordVote locks the proposal row, inserts the vote and bumps the matching tally
func (s *pgStore) RecordVote(ctx context.Context, input RecordVoteInput) (*schema.Proposal, *schema.Vote, error) {
	var column string
	switch input.Support {
	case domain.VoteSupportFor:
		column = "for_votes"
	case domain.VoteSupportAgainst:
		column = "against_votes"
	case domain.VoteSupportAbstain:
		column = "abstain_votes"
	default:
		return nil, nil, fmt.Errorf("%w: unknown vote support %q", domain.ErrValidation, input.Support)
	}

	var proposal schema.Proposal
	vote := &schema.Vote{
		ProposalID: input.ProposalID,
		Voter:      input.Voter,
		Support:    input.Support,
		Weight:     input.Weight,
		Balance:    input.Balance,
		CastAt:     input.CastAt,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row lock serializes votes on the same proposal across processes
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ProposalID).
			First(&proposal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: proposal %s", domain.ErrNotFound, input.ProposalID)
			}
			return fmt.Errorf("failed to lock proposal: %w", err)
		}

		var existing int64
		err = tx.Model(&schema.Vote{}).
			Where("proposal_id = ? AND LOWER(voter) = LOWER(?)", input.ProposalID, input.Voter).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check existing vote: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: %s on proposal %s", domain.ErrAlreadyVoted, input.Voter, input.ProposalID)
		}

		if err := tx.Create(vote).Error; err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}

		err = tx.Model(&schema.Proposal{}).
			Where("id = ?", input.ProposalID).
			Updates(map[string]interface{}{
				column:       gorm.Expr(column+" + ?", input.Weight),
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update tally: %w", err)
		}

		return tx.Where("id = ?", input.ProposalID).First(&proposal).Error
	})
	if err != nil {
		return nil, nil, err
	}

	logger.DebugCtx(ctx, "Recorded vote",
		zap.String("proposal_id", input.ProposalID),
		zap.String("voter", input.Voter),
		zap.String("support", string(input.Support)),
		zap.String("weight", input.Weight.String()),
	)

	return &proposal, vote, nil
}

// GetVote retrieves the vote of voter on a proposal
func (s *pgStore) GetVote(ctx context.Context, proposalID, voter string) (*schema.Vote, error) {
	var vote schema.Vote
	err := s.db.WithContext(ctx).
		Where("proposal_id = ? AND LOWER(voter) = LOWER(?)", proposalID, voter).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// ListVotes lists the votes of a proposal in the order they were cast
func (s *pgStore) ListVotes(ctx context.Context, proposalID string, limit int, offset uint64) ([]schema.Vote, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Vote{}).Where("proposal_id = ?", proposalID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	var votes []schema.Vote
	err := query.
		Order("cast_at ASC, id ASC").
		Limit(pageLimit(limit)).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&votes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list votes: %w", err)
	}

	return votes, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Vesting grants
// =============================================================================

// CreateVestingGrant inserts a vesting grant
func (s *pgStore) CreateVestingGrant(ctx context.Context, input CreateVestingGrantInput) (*schema.VestingGrant, error) {
	now := time.Now().UTC()
	grant := &schema.VestingGrant{
		ID:                     input.ID,
		Recipient:              input.Recipient,
		Category:               input.Category,
		Amount:                 input.Amount,
		StartTimestamp:         input.StartTimestamp,
		CliffSeconds:           input.CliffSeconds,
		DurationSeconds:        input.DurationSeconds,
		ReleaseIntervalSeconds: input.ReleaseIntervalSeconds,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.db.WithContext(ctx).Create(grant).Error; err != nil {
		return nil, fmt.Errorf("failed to create vesting grant: %w", err)
	}

	return grant, nil
}

// GetVestingGrant retrieves a grant by ID
func (s *pgStore) GetVestingGrant(ctx context.Context, id string) (*schema.VestingGrant, error) {
	var grant schema.VestingGrant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vesting grant: %w", err)
	}

	return &grant, nil
}

// ListVestingGrants lists grants matching the filter, oldest start first
func (s *pgStore) ListVestingGrants(ctx context.Context, filter VestingGrantQueryFilter) ([]*schema.VestingGrant, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.VestingGrant{})

	if filter.Recipient != "" {
		query = query.Where("LOWER(recipient) = LOWER(?)", filter.Recipient)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.IncludeRevoked {
		query = query.Where("revoked = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vesting grants: %w", err)
	}

	var grants []*schema.VestingGrant
	err := query.
		Order("start_timestamp ASC, id ASC").
		Limit(pageLimit(filter.Limit)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&grants).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vesting grants: %w", err)
	}

	return grants, uint64(total), nil //nolint:gosec,G115
}

// UpdateVestingGrant updates the released amount and revocation of a grant.
// Released never decreases and a revoked grant stays revoked. The expected values are
// compared under the row lock.
func (s *pgStore) UpdateVestingGrant(ctx context.Context, input UpdateVestingGrantInput) (*schema.VestingGrant, error) {
	var grant schema.VestingGrant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ID).
			First(&grant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vesting grant %s", domain.ErrNotFound, input.ID)
			}
			return fmt.Errorf("failed to lock vesting grant: %w", err)
		}

		if input.ExpectedReleased != nil && !grant.Released.Equal(*input.ExpectedReleased) {
			return fmt.Errorf("%w: grant %s was released concurrently", domain.ErrState, input.ID)
		}
		if input.ExpectedRevoked != nil && grant.Revoked != *input.ExpectedRevoked {
			return fmt.Errorf("%w: grant %s was revoked concurrently", domain.ErrState, input.ID)
		}
		if input.Released.LessThan(grant.Released) {
			return fmt.Errorf("%w: released amount of grant %s cannot decrease", domain.ErrState, input.ID)
		}
		if input.Released.GreaterThan(grant.Amount) {
			return fmt.Errorf("%w: released amount of grant %s exceeds its total", domain.ErrState, input.ID)
		}
		if grant.Revoked && !input.Revoked {
			return fmt.Errorf("%w: grant %s is revoked", domain.ErrState, input.ID)
		}

		updates := map[string]interface{}{
			"released":   input.Released,
			"revoked":    input.Revoked,
			"updated_at": time.Now().UTC(),
		}
		if input.RevokedAt != nil && grant.RevokedAt == nil {
			updates["revoked_at"] = *input.RevokedAt
		}

		if err := tx.Model(&grant).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update vesting grant: %w", err)
		}

		return tx.Where("id = ?", input.ID).First(&grant).Error
	})
	if err != nil {
		return nil, err
	}

	return &grant, nil
}

// CreateVestingGrants inserts the grants whose ID is not stored yet
func (s *pgStore) CreateVestingGrants(ctx context.Context, inputs []CreateVestingGrantInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	grants := make([]schema.VestingGrant, len(inputs))
	for i, input := range inputs {
		grants[i] = schema.VestingGrant{
			ID:                     input.ID,
			Recipient:              input.Recipient,
			Category:               input.Category,
			Amount:                 input.Amount,
			StartTimestamp:         input.StartTimestamp,
			CliffSeconds:           input.CliffSeconds,
			DurationSeconds:        input.DurationSeconds,
			ReleaseIntervalSeconds: input.ReleaseIntervalSeconds,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&grants)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create vesting grants: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

// =============================================================================
// Delegations
// =============================================================================

// SetDelegation creates or replaces the delegation of delegator
func (s *pgStore) SetDelegation(ctx context.Context, delegator, delegatee string) (*schema.Delegation, error) {
	if strings.EqualFold(delegator, delegatee) {
		return nil, fmt.Errorf("%w: %s cannot delegate to itself", domain.ErrValidation, delegator)
	}

	now := time.Now().UTC()
	delegation := &schema.Delegation{
		Delegator: delegator,
		Delegatee: delegatee,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "delegator"}},
			DoUpdates: clause.AssignmentColumns([]string{"delegatee", "updated_at"}),
		}).
		Create(delegation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set delegation: %w", err)
	}

	return s.GetDelegation(ctx, delegator)
}

// DeleteDelegation removes the delegation of delegator
func (s *pgStore) DeleteDelegation(ctx context.Context, delegator string) error {
	result := s.db.WithContext(ctx).
		Where("delegator = ?", delegator).
		Delete(&schema.Delegation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete delegation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: delegation of %s", domain.ErrNotFound, delegator)
	}

	return nil
}

// GetDelegation retrieves the delegation of delegator
func (s *pgStore) GetDelegation(ctx context.Context, delegator string) (*schema.Delegation, error) {
	var delegation schema.Delegation
	err := s.db.WithContext(ctx).Where("delegator = ?", delegator).First(&delegation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get delegation: %w", err)
	}

	return &delegation, nil
}

// ListDelegators lists the delegations made to delegatee, ordered by delegator
func (s *pgStore) ListDelegators(ctx context.Context, delegatee string) ([]schema.Delegation, error) {
	var delegations []schema.Delegation
	err := s.db.WithContext(ctx).
		Where("LOWER(delegatee) = LOWER(?)", delegatee).
		Order("delegator ASC").
		Find(&delegations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list delegators: %w", err)
	}

	return delegations, nil
}

// =============================================================================
// Key-value state
// =============================================================================

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
