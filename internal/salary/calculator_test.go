package salary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(player, amount string, season int, league string) Record {
	return Record{
		Player: player,
		Amount: decimal.RequireFromString(amount),
		Season: season,
		League: league,
	}
}

func TestComputeOffer_AverageOfTopN(t *testing.T) {
	records := []Record{
		rec("A", "100.00", 2024, "MLB"),
		rec("B", "200.00", 2024, "MLB"),
		rec("C", "300.00", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", 2)
	require.NoError(t, err)

	assert.Equal(t, "250.00", off.Value.StringFixed(2))
	require.Len(t, off.Used, 2)
	assert.Equal(t, "C", off.Used[0].Player)
	assert.Equal(t, "B", off.Used[1].Player)
	assert.Equal(t, "300.00", off.Analysis.Ceiling.StringFixed(2))
	assert.Equal(t, "200.00", off.Analysis.Floor.StringFixed(2))
}

func TestComputeOffer_ExactlyThresholdRecords(t *testing.T) {
	records := []Record{
		rec("A", "100", 2024, "MLB"),
		rec("B", "200", 2024, "MLB"),
		rec("C", "300", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, off.Analysis.UsedCount)
	assert.Equal(t, 3, off.Analysis.SeasonTotal)
	assert.Equal(t, 3, off.Analysis.Threshold)
}

func TestComputeOffer_FewerThanThresholdUsesAll(t *testing.T) {
	records := []Record{
		rec("A", "100", 2024, "MLB"),
		rec("B", "200", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 2, off.Analysis.UsedCount)
	assert.Equal(t, off.Analysis.SeasonTotal, off.Analysis.UsedCount)
	assert.Equal(t, "150.00", off.Value.StringFixed(2))
}

func TestComputeOffer_MostRecentSeasonOnly(t *testing.T) {
	records := []Record{
		rec("Old", "9000000", 2023, "MLB"),
		rec("A", "1000000", 2024, "MLB"),
		rec("B", "2000000", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 2024, off.Season)
	assert.Equal(t, 2, off.Analysis.SeasonTotal)
	assert.Equal(t, "1500000.00", off.Value.StringFixed(2))
}

func TestComputeOffer_LeagueFilterCaseInsensitive(t *testing.T) {
	records := []Record{
		rec("A", "100", 2024, "mlb"),
		rec("B", "200", 2024, "Mlb"),
		rec("Minor", "999999", 2024, "AAA"),
	}

	off, err := ComputeOffer(records, "MLB", DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 2, off.Analysis.LeagueTotal)
	assert.Equal(t, "150.00", off.Value.StringFixed(2))
}

func TestComputeOffer_RoundsHalfUpToCents(t *testing.T) {
	records := []Record{
		rec("A", "10.00", 2024, "MLB"),
		rec("B", "10.01", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", 2)
	require.NoError(t, err)

	// (10.00 + 10.01) / 2 = 10.005, which rounds half-up to 10.01.
	assert.Equal(t, "10.01", off.Value.StringFixed(2))
}

func TestComputeOffer_StableTiesAtTruncationBoundary(t *testing.T) {
	records := []Record{
		rec("First", "50", 2024, "MLB"),
		rec("Second", "50", 2024, "MLB"),
		rec("Top", "100", 2024, "MLB"),
		rec("Third", "50", 2024, "MLB"),
	}

	off, err := ComputeOffer(records, "MLB", 2)
	require.NoError(t, err)
	require.Len(t, off.Used, 2)
	assert.Equal(t, "Top", off.Used[0].Player)
	// Equal amounts keep input order, so "First" wins the last slot.
	assert.Equal(t, "First", off.Used[1].Player)

	// Identical input always yields identical selection.
	again, err := ComputeOffer(records, "MLB", 2)
	require.NoError(t, err)
	assert.Equal(t, off.Used, again.Used)
	assert.True(t, off.Value.Equal(again.Value))
}

func TestComputeOffer_InputOrderPreserved(t *testing.T) {
	records := []Record{
		rec("A", "100", 2024, "MLB"),
		rec("B", "200", 2024, "MLB"),
	}

	_, err := ComputeOffer(records, "MLB", 1)
	require.NoError(t, err)

	// The caller's slice must not be reordered.
	assert.Equal(t, "A", records[0].Player)
	assert.Equal(t, "B", records[1].Player)
}

func TestComputeOffer_NoTargetLeagueRecords(t *testing.T) {
	records := []Record{
		rec("Minor", "100", 2024, "AAA"),
	}

	_, err := ComputeOffer(records, "MLB", DefaultThreshold)
	require.Error(t, err)

	var nde *NoDataError
	require.ErrorAs(t, err, &nde)
	assert.Contains(t, nde.Reason, "no MLB records")
}

func TestComputeOffer_EmptyInput(t *testing.T) {
	_, err := ComputeOffer(nil, "MLB", DefaultThreshold)

	var nde *NoDataError
	require.ErrorAs(t, err, &nde)
}

func TestComputeOffer_NonPositiveThreshold(t *testing.T) {
	records := []Record{
		rec("A", "100", 2024, "MLB"),
	}

	_, err := ComputeOffer(records, "MLB", 0)

	var nde *NoDataError
	require.ErrorAs(t, err, &nde)
	assert.Contains(t, nde.Reason, "cannot compute offer")
}
