package schema

import (
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// Vote represents the votes table - one row per voter and proposal
type Vote struct {
	ID         uint64             `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalID string             `gorm:"column:proposal_id;not null;type:uuid;uniqueIndex:uq_votes_proposal_voter"`
	Voter      string             `gorm:"column:voter;not null;type:varchar(42);uniqueIndex:uq_votes_proposal_voter"`
	Support    domain.VoteSupport `gorm:"column:support;not null;type:varchar(8)"`
	// Weight is the voting power snapshotted when the vote was cast
	Weight amount.TokenAmount `gorm:"column:weight;not null;type:numeric(78,0)"`
	// Balance is the token balance the weight was computed from
	Balance   amount.TokenAmount `gorm:"column:balance;not null;type:numeric(78,0)"`
	CastAt    time.Time          `gorm:"column:cast_at;not null;type:timestamptz"`
	CreatedAt time.Time          `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
