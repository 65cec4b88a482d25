package salary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the number of top earners averaged into the offer.
const DefaultThreshold = 125

// NoDataError reports that, after all row-level tolerance, nothing remained
// to aggregate. Callers should surface it as a clean terminal condition for
// the computation, not a crash.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string {
	return e.Reason
}

// Analysis summarizes the record subset an offer was computed from.
type Analysis struct {
	LeagueTotal int             `json:"league_total"`
	SeasonTotal int             `json:"season_total"`
	UsedCount   int             `json:"used_count"`
	Threshold   int             `json:"threshold"`
	Floor       decimal.Decimal `json:"floor_amount"`
	Ceiling     decimal.Decimal `json:"ceiling_amount"`
}

// Offer is the qualifying-offer computation result.
type Offer struct {
	Value    decimal.Decimal `json:"value"`
	Used     []Record        `json:"used"`
	Season   int             `json:"season"`
	Analysis Analysis        `json:"analysis"`
}

// ComputeOffer filters records to the target league, selects the most recent
// season, ranks by amount descending, truncates to threshold, and averages
// with exact decimal arithmetic, rounding half-up to two places.
//
// The sort is stable: records with equal amounts keep their original relative
// order, so the selection at the truncation boundary is deterministic for a
// given input order. League filtering here is intentionally independent of
// the extractor's informational league counter.
func ComputeOffer(records []Record, targetLeague string, threshold int) (*Offer, error) {
	var inLeague []Record
	for _, r := range records {
		if strings.EqualFold(r.League, targetLeague) {
			inLeague = append(inLeague, r)
		}
	}
	if len(inLeague) == 0 {
		return nil, &NoDataError{Reason: fmt.Sprintf("no %s records found", strings.ToUpper(targetLeague))}
	}

	mostRecent := inLeague[0].Season
	for _, r := range inLeague[1:] {
		if r.Season > mostRecent {
			mostRecent = r.Season
		}
	}

	var current []Record
	for _, r := range inLeague {
		if r.Season == mostRecent {
			current = append(current, r)
		}
	}
	if len(current) == 0 {
		// Unreachable given mostRecent comes from inLeague; kept to document
		// the invariant.
		return nil, &NoDataError{Reason: fmt.Sprintf("no %s records for season %d", strings.ToUpper(targetLeague), mostRecent)}
	}

	ranked := make([]Record, len(current))
	copy(ranked, current)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if threshold <= 0 {
		ranked = ranked[:0]
	} else if len(ranked) > threshold {
		ranked = ranked[:threshold]
	}
	if len(ranked) == 0 {
		return nil, &NoDataError{Reason: "cannot compute offer: no usable records"}
	}

	sum := decimal.Zero
	for _, r := range ranked {
		sum = sum.Add(r.Amount)
	}
	value := sum.DivRound(decimal.NewFromInt(int64(len(ranked))), 2)

	return &Offer{
		Value:  value,
		Used:   ranked,
		Season: mostRecent,
		Analysis: Analysis{
			LeagueTotal: len(inLeague),
			SeasonTotal: len(current),
			UsedCount:   len(ranked),
			Threshold:   threshold,
			Floor:       ranked[len(ranked)-1].Amount,
			Ceiling:     ranked[0].Amount,
		},
	}, nil
}
