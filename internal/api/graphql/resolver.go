package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/executor"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// Resolver is the root resolver that holds executor
type Resolver struct {
	executor executor.Executor
}

// NewResolver creates a new root resolver with executor
func NewResolver(exec executor.Executor) *Resolver {
	return &Resolver{
		executor: exec,
	}
}

// resolveQuery resolves one root query field. The result is projected onto the selection
// through its JSON form, so the field names of the schema are the JSON keys of the DTOs.
func (r *Resolver) resolveQuery(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "distribution_stats":
		at, err := optionalTime(args, "at")
		if err != nil {
			return nil, err
		}
		return r.executor.GetDistributionStats(ctx, at)

	case "allocation_schedule":
		months, err := optionalUint64(args, "months")
		if err != nil {
			return nil, err
		}
		var m uint64
		if months != nil {
			m = *months
		}
		if m > vesting.MaxScheduleMonths {
			return nil, apierrors.NewValidationError(fmt.Sprintf("months must not exceed %d", vesting.MaxScheduleMonths))
		}
		return r.executor.GetAllocationSchedule(ctx, stringArg(args, "category"), m)

	case "upcoming_releases":
		months, err := optionalInt(args, "months")
		if err != nil {
			return nil, err
		}
		var m int
		if months != nil {
			m = *months
		}
		if m < 0 || m > constants.MAX_UPCOMING_MONTHS {
			return nil, apierrors.NewValidationError(fmt.Sprintf("months must be between 0 and %d", constants.MAX_UPCOMING_MONTHS))
		}
		return r.executor.GetUpcomingReleases(ctx, m, stringArg(args, "source"))

	case "voting_power":
		var strategy *domain.VotingStrategy
		if s := stringArg(args, "strategy"); s != "" {
			vs := domain.VotingStrategy(s)
			strategy = &vs
		}
		return r.executor.GetVotingPower(ctx, stringArg(args, "address"), strategy)

	case "proposals":
		limit, offset, err := pageArgs(args)
		if err != nil {
			return nil, err
		}
		var statuses []domain.ProposalStatus
		if list, ok := args["status"].([]interface{}); ok {
			for _, s := range list {
				if str, ok := s.(string); ok {
					statuses = append(statuses, domain.ProposalStatus(str))
				}
			}
		}
		order := store.SortOrderDesc
		if stringArg(args, "order") == string(store.SortOrderAsc) {
			order = store.SortOrderAsc
		}
		return r.executor.ListProposals(ctx, statuses, stringArg(args, "proposer"), limit, offset, order)

	case "proposal":
		return r.executor.GetProposal(ctx, stringArg(args, "id"))

	case "votes":
		limit, offset, err := pageArgs(args)
		if err != nil {
			return nil, err
		}
		return r.executor.ListVotes(ctx, stringArg(args, "proposal_id"), limit, offset)

	case "grants":
		limit, offset, err := pageArgs(args)
		if err != nil {
			return nil, err
		}
		includeRevoked, _ := args["include_revoked"].(bool)
		return r.executor.ListGrants(ctx, stringArg(args, "recipient"), stringArg(args, "category"), includeRevoked, limit, offset)

	case "grant":
		return r.executor.GetGrant(ctx, stringArg(args, "id"))

	default:
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("Unknown field: %s", field))
	}
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optionalTime(args map[string]interface{}, name string) (*time.Time, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	var t Time
	if err := t.UnmarshalGQL(v); err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: %v", name, err))
	}
	native := time.Time(t)
	return &native, nil
}

func optionalUint64(args map[string]interface{}, name string) (*uint64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	var u Uint64
	if err := u.UnmarshalGQL(v); err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: %v", name, err))
	}
	return ToNativeUint64(&u), nil
}

func optionalInt(args map[string]interface{}, name string) (*int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}

	var n int64
	switch v := v.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		n = int64(v)
	case json.Number:
		parsed, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return nil, apierrors.NewValidationError(fmt.Sprintf("%s: cannot parse %q as integer", name, v))
		}
		n = parsed
	default:
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: cannot unmarshal %T to Int", name, v))
	}

	i := int(n)
	return &i, nil
}

// pageArgs reads limit and offset, leaving the executor defaults in place when absent
func pageArgs(args map[string]interface{}) (*int, *uint64, error) {
	limit, err := optionalInt(args, "limit")
	if err != nil {
		return nil, nil, err
	}
	if limit != nil && (*limit < 1 || *limit > constants.MAX_PAGE_SIZE) {
		return nil, nil, apierrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE))
	}

	offset, err := optionalUint64(args, "offset")
	if err != nil {
		return nil, nil, err
	}
	return limit, offset, nil
}
