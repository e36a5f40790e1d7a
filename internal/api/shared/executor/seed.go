package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/store"
	internalTypes "github.com/feral-file/ff-tokenomics/internal/types"
)

// SeedDocumentGrants inserts the grants declared in the distribution document into the store.
// Grants whose ID already exists are left untouched, so restarting with the same document
// does not reset released amounts or revocations. It returns the number of grants inserted.
func SeedDocumentGrants(ctx context.Context, s store.Store, doc *distribution.Document) (int, error) {
	if doc == nil || len(doc.Grants) == 0 {
		return 0, nil
	}

	inputs := make([]store.CreateVestingGrantInput, 0, len(doc.Grants))
	for i := range doc.Grants {
		inputs = append(inputs, internalTypes.ToCreateVestingGrantInput(&doc.Grants[i]))
	}

	inserted, err := s.CreateVestingGrants(ctx, inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed distribution grants: %w", err)
	}

	logger.InfoCtx(ctx, "Seeded distribution grants",
		zap.Int("declared", len(inputs)),
		zap.Int("inserted", inserted))

	return inserted, nil
}
