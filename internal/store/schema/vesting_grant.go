package schema

import (
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
)

// VestingGrant represents the vesting_grants table - per-recipient vesting schedules
type VestingGrant struct {
	ID                     string             `gorm:"column:id;primaryKey;type:uuid"`
	Recipient              string             `gorm:"column:recipient;not null;type:varchar(42);index"`
	Category               string             `gorm:"column:category;not null;type:text;index"`
	Amount                 amount.TokenAmount `gorm:"column:amount;not null;type:numeric(78,0)"`
	StartTimestamp         time.Time          `gorm:"column:start_timestamp;not null;type:timestamptz"`
	CliffSeconds           uint64             `gorm:"column:cliff_seconds;not null"`
	DurationSeconds        uint64             `gorm:"column:duration_seconds;not null"`
	ReleaseIntervalSeconds uint64             `gorm:"column:release_interval_seconds;not null"`
	Released               amount.TokenAmount `gorm:"column:released;not null;type:numeric(78,0);default:0"`
	Revoked                bool               `gorm:"column:revoked;not null;default:false"`
	RevokedAt              *time.Time         `gorm:"column:revoked_at;type:timestamptz"`
	CreatedAt              time.Time          `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VestingGrant model
func (VestingGrant) TableName() string {
	return "vesting_grants"
}
