package distribution

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// grantNamespace seeds deterministic IDs for grants declared without one
var grantNamespace = uuid.MustParse("5b0e5f56-3c1d-4d8e-9a57-0f6b1c2f7a10")

// Document is a loaded distribution together with the grants declared alongside it
type Document struct {
	Distribution Distribution
	Grants       []vesting.VestingSchedule
}

// Loader defines the interface for loading distribution files
//
//go:generate mockgen -source=loader.go -destination=../mocks/distribution_loader.go -package=mocks -mock_names=Loader=MockDistributionLoader
type Loader interface {
	// Load loads and validates a distribution from a JSON file
	Load(filePath string) (*Document, error)
}

// fileAllocation is the on-disk form of an allocation. Amounts are whole tokens and
// durations may be given in seconds or in 30-day months.
type fileAllocation struct {
	Name                   string `json:"name"`
	ShareBps               uint64 `json:"share_bps"`
	TotalAmount            string `json:"total_amount,omitempty"`
	VestingEnabled         bool   `json:"vesting_enabled"`
	CliffSeconds           uint64 `json:"cliff_seconds,omitempty"`
	CliffMonths            uint64 `json:"cliff_months,omitempty"`
	VestingSeconds         uint64 `json:"vesting_seconds,omitempty"`
	VestingMonths          uint64 `json:"vesting_months,omitempty"`
	TGEUnlockPercent       uint64 `json:"tge_unlock_percent"`
	ReleaseIntervalSeconds uint64 `json:"release_interval_seconds,omitempty"`
}

type fileGrant struct {
	ID                     string `json:"id,omitempty"`
	Recipient              string `json:"recipient"`
	Category               string `json:"category"`
	Amount                 string `json:"amount"`
	Start                  string `json:"start,omitempty"`
	CliffSeconds           uint64 `json:"cliff_seconds,omitempty"`
	CliffMonths            uint64 `json:"cliff_months,omitempty"`
	DurationSeconds        uint64 `json:"duration_seconds,omitempty"`
	DurationMonths         uint64 `json:"duration_months,omitempty"`
	ReleaseIntervalSeconds uint64 `json:"release_interval_seconds,omitempty"`
}

type fileDocument struct {
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	Decimals    *uint8           `json:"decimals,omitempty"`
	TotalSupply string           `json:"total_supply"`
	TGE         string           `json:"tge"`
	Allocations []fileAllocation `json:"allocations"`
	Grants      []fileGrant      `json:"grants,omitempty"`
}

// loader is the internal implementation of Loader interface
type loader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewLoader creates a new Loader with injected dependencies
func NewLoader(fs adapter.FileSystem, json adapter.JSON) Loader {
	return &loader{
		fs:   fs,
		json: json,
	}
}

// Load loads and validates a distribution from a JSON file
func (l *loader) Load(filePath string) (*Document, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution file: %w", err)
	}

	var doc fileDocument
	if err := l.json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse distribution JSON: %w", err)
	}

	d, err := doc.distribution()
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	grants := make([]vesting.VestingSchedule, 0, len(doc.Grants))
	for i, fg := range doc.Grants {
		g, err := fg.schedule(d, i)
		if err != nil {
			return nil, fmt.Errorf("grant %d: %w", i, err)
		}
		grants = append(grants, *g)
	}

	return &Document{Distribution: *d, Grants: grants}, nil
}

func (doc fileDocument) distribution() (*Distribution, error) {
	decimals := uint8(domain.DefaultDecimals)
	if doc.Decimals != nil {
		decimals = *doc.Decimals
	}

	supply, err := amount.ParseWhole(doc.TotalSupply, decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid total supply: %w", err)
	}

	tge, err := time.Parse(time.RFC3339, doc.TGE)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tge %q: %v", domain.ErrValidation, doc.TGE, err)
	}

	d := &Distribution{
		Name:        doc.Name,
		Symbol:      doc.Symbol,
		TotalSupply: supply,
		Decimals:    decimals,
		TGE:         tge.UTC(),
		Allocations: make([]vesting.AllocationCategory, 0, len(doc.Allocations)),
	}

	for _, fa := range doc.Allocations {
		interval := fa.ReleaseIntervalSeconds
		if interval == 0 {
			interval = domain.SecondsPerMonth
		}

		total, err := supply.MulPercent(fa.ShareBps)
		if err != nil {
			return nil, fmt.Errorf("allocation %s: %w", fa.Name, err)
		}
		if fa.TotalAmount != "" {
			total, err = amount.ParseWhole(fa.TotalAmount, decimals)
			if err != nil {
				return nil, fmt.Errorf("allocation %s: %w", fa.Name, err)
			}
		}

		d.Allocations = append(d.Allocations, vesting.AllocationCategory{
			Name:                   fa.Name,
			PercentageOfSupplyBps:  fa.ShareBps,
			TotalAmount:            total,
			VestingEnabled:         fa.VestingEnabled,
			CliffSeconds:           seconds(fa.CliffSeconds, fa.CliffMonths),
			VestingSeconds:         seconds(fa.VestingSeconds, fa.VestingMonths),
			TGEUnlockPercent:       fa.TGEUnlockPercent,
			ReleaseIntervalSeconds: interval,
		})
	}

	return d, nil
}

func (fg fileGrant) schedule(d *Distribution, index int) (*vesting.VestingSchedule, error) {
	alloc, ok := d.Allocation(fg.Category)
	if !ok {
		return nil, fmt.Errorf("%w: allocation %q", domain.ErrNotFound, fg.Category)
	}

	amt, err := amount.ParseWhole(fg.Amount, d.Decimals)
	if err != nil {
		return nil, err
	}

	start := d.TGE
	if fg.Start != "" {
		start, err = time.Parse(time.RFC3339, fg.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start %q: %v", domain.ErrValidation, fg.Start, err)
		}
	}

	cliff := seconds(fg.CliffSeconds, fg.CliffMonths)
	duration := seconds(fg.DurationSeconds, fg.DurationMonths)
	if cliff == 0 && duration == 0 {
		cliff, duration = alloc.CliffSeconds, alloc.CliffSeconds+alloc.VestingSeconds
	}

	interval := fg.ReleaseIntervalSeconds
	if interval == 0 {
		interval = min(alloc.ReleaseIntervalSeconds, duration)
	}

	id := fg.ID
	if id == "" {
		id = uuid.NewSHA1(grantNamespace, []byte(fmt.Sprintf("%s:%s:%d", fg.Category, fg.Recipient, index))).String()
	}

	return vesting.NewVestingSchedule(vesting.GrantParams{
		ID:                     id,
		Recipient:              fg.Recipient,
		Category:               fg.Category,
		Amount:                 amt,
		Start:                  start,
		CliffSeconds:           cliff,
		DurationSeconds:        duration,
		ReleaseIntervalSeconds: interval,
	})
}

func seconds(secs, months uint64) uint64 {
	if secs != 0 {
		return secs
	}
	return months * domain.SecondsPerMonth
}
