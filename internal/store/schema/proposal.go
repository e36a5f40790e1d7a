package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// Proposal represents the proposals table - governance proposals with running tallies
type Proposal struct {
	// ID is the proposal UUID
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// Proposer is the checksummed address that created the proposal
	Proposer string `gorm:"column:proposer;not null;type:varchar(42)"`
	Title    string `gorm:"column:title;not null;type:text"`
	// Description is free-form markdown
	Description string `gorm:"column:description;not null;type:text"`
	// ContentHash is the keccak256 hash of the canonical proposal content
	ContentHash             string                `gorm:"column:content_hash;not null;type:varchar(66)"`
	ForVotes                amount.TokenAmount    `gorm:"column:for_votes;not null;type:numeric(78,0);default:0"`
	AgainstVotes            amount.TokenAmount    `gorm:"column:against_votes;not null;type:numeric(78,0);default:0"`
	AbstainVotes            amount.TokenAmount    `gorm:"column:abstain_votes;not null;type:numeric(78,0);default:0"`
	QuorumPercent           uint64                `gorm:"column:quorum_percent;not null;type:smallint"`
	RequiredMajorityPercent uint64                `gorm:"column:required_majority_percent;not null;type:smallint"`
	VotingStrategy          domain.VotingStrategy `gorm:"column:voting_strategy;not null;type:varchar(16)"`
	// SupplySnapshot is the total supply quorum is measured against
	SupplySnapshot amount.TokenAmount `gorm:"column:supply_snapshot;not null;type:numeric(78,0)"`
	StartTime      time.Time          `gorm:"column:start_time;not null;type:timestamptz"`
	EndTime        time.Time          `gorm:"column:end_time;not null;type:timestamptz"`
	// Status is the last status written by the API or the proposal sweeper
	Status    domain.ProposalStatus `gorm:"column:status;not null;type:varchar(16);index"`
	Executed  bool                  `gorm:"column:executed;not null;default:false"`
	Canceled  bool                  `gorm:"column:canceled;not null;default:false"`
	QueuedEta *time.Time            `gorm:"column:queued_eta;type:timestamptz"`
	// Metadata holds client supplied attributes such as discussion links
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Proposal model
func (Proposal) TableName() string {
	return "proposals"
}
