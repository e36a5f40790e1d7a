package distribution

import (
	"fmt"
	"sort"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// MaxLookaheadMonths bounds the upcoming releases window
const MaxLookaheadMonths = 120

type bucket struct {
	release    UpcomingRelease
	categories map[string]struct{}
	recipients map[string]struct{}
}

// ComputeUpcomingReleases groups every release after now and before now + lookaheadMonths
// by UTC calendar month. Months without releases are omitted. A zero lookahead uses
// the default window.
func ComputeUpcomingReleases(schedules []vesting.VestingSchedule, now time.Time, lookaheadMonths int) ([]UpcomingRelease, error) {
	end, err := windowEnd(now, lookaheadMonths)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*bucket{}
	for i := range schedules {
		g := &schedules[i]
		if g.Revoked {
			continue
		}

		from := now
		for _, seg := range monthSegments(now, end) {
			released := g.VestedBetween(from, seg.last)
			from = seg.last
			if released.IsZero() {
				continue
			}
			if err := addToBucket(buckets, seg.start, released, g.Category, g.Recipient); err != nil {
				return nil, err
			}
		}
	}

	return sortBuckets(buckets), nil
}

// ComputeUpcomingAllocationReleases is the allocation-level counterpart of
// ComputeUpcomingReleases, based on the monthly schedules of the distribution.
// Recipient counts are always zero since allocations carry no recipients.
func ComputeUpcomingAllocationReleases(d Distribution, now time.Time, lookaheadMonths int) ([]UpcomingRelease, error) {
	end, err := windowEnd(now, lookaheadMonths)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	buckets := map[string]*bucket{}
	for _, alloc := range d.Allocations {
		schedule, err := vesting.ComputeMonthlySchedule(alloc, 0, d.TGE)
		if err != nil {
			return nil, fmt.Errorf("failed to compute schedule for %s: %w", alloc.Name, err)
		}

		for _, e := range schedule.Entries {
			if !e.Date.After(now) || !e.Date.Before(end) || e.ReleasedThisPeriod.IsZero() {
				continue
			}
			if err := addToBucket(buckets, e.Date, e.ReleasedThisPeriod, alloc.Name, ""); err != nil {
				return nil, err
			}
		}
	}

	return sortBuckets(buckets), nil
}

func windowEnd(now time.Time, lookaheadMonths int) (time.Time, error) {
	if lookaheadMonths == 0 {
		lookaheadMonths = domain.DefaultUpcomingLookaheadMonths
	}
	if lookaheadMonths < 0 || lookaheadMonths > MaxLookaheadMonths {
		return time.Time{}, fmt.Errorf("%w: lookahead must be between 1 and %d months", domain.ErrValidation, MaxLookaheadMonths)
	}
	return now.UTC().AddDate(0, lookaheadMonths, 0), nil
}

type segment struct {
	start time.Time
	last  time.Time
}

// monthSegments splits (now, end) at calendar month boundaries. Each segment records
// the month it belongs to and the last instant it covers.
func monthSegments(now, end time.Time) []segment {
	var segments []segment
	cursor := now.UTC()
	for cursor.Before(end) {
		monthStart := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
		next := monthStart.AddDate(0, 1, 0)

		last := next.Add(-time.Nanosecond)
		if !next.Before(end) {
			last = end.Add(-time.Nanosecond)
		}
		segments = append(segments, segment{start: monthStart, last: last})
		cursor = next
	}
	return segments
}

func addToBucket(buckets map[string]*bucket, at time.Time, released amount.TokenAmount, category, recipient string) error {
	at = at.UTC()
	key := at.Format("2006-01")

	b, ok := buckets[key]
	if !ok {
		b = &bucket{
			release: UpcomingRelease{
				Month: key,
				Start: time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC),
			},
			categories: map[string]struct{}{},
			recipients: map[string]struct{}{},
		}
		buckets[key] = b
	}

	var err error
	if b.release.Amount, err = b.release.Amount.Add(released); err != nil {
		return fmt.Errorf("failed to sum releases for %s: %w", key, err)
	}
	b.categories[category] = struct{}{}
	if recipient != "" {
		b.recipients[recipient] = struct{}{}
	}
	return nil
}

func sortBuckets(buckets map[string]*bucket) []UpcomingRelease {
	releases := make([]UpcomingRelease, 0, len(buckets))
	for _, b := range buckets {
		r := b.release
		r.Categories = make([]string, 0, len(b.categories))
		for c := range b.categories {
			r.Categories = append(r.Categories, c)
		}
		sort.Strings(r.Categories)
		r.RecipientCount = len(b.recipients)
		releases = append(releases, r)
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Month < releases[j].Month
	})
	return releases
}
