package schema

import "time"

// Delegation represents the delegations table - the current delegatee of each delegating address
type Delegation struct {
	// Delegator is the checksummed address whose balance counts toward Delegatee
	Delegator string    `gorm:"column:delegator;primaryKey;type:varchar(42)"`
	Delegatee string    `gorm:"column:delegatee;not null;type:varchar(42);index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Delegation model
func (Delegation) TableName() string {
	return "delegations"
}
