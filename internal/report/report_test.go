package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/offer-cli/internal/salary"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567.89", "$1,234,567.89"},
		{"1500000", "$1,500,000.00"},
		{"999.5", "$999.50"},
		{"0", "$0.00"},
		{"-42.1", "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleOffer(t *testing.T) *salary.Offer {
	t.Helper()
	records := []salary.Record{
		{Player: "Smith, Alex", Amount: decimal.RequireFromString("2000000"), Season: 2024, League: "MLB"},
		{Player: "Jones, Sam", Amount: decimal.RequireFromString("1000000"), Season: 2024, League: "MLB"},
	}
	off, err := salary.ComputeOffer(records, "MLB", salary.DefaultThreshold)
	require.NoError(t, err)
	return off
}

func TestWriteMetrics(t *testing.T) {
	rows := []salary.Row{}
	res := salary.Extract(rows, "MLB")

	var buf bytes.Buffer
	WriteMetrics(&buf, &res.Metrics)

	out := buf.String()
	assert.Contains(t, out, "PARSING SUMMARY")
	assert.Contains(t, out, "Rows scanned:")
	assert.Contains(t, out, "Invalid amounts:")
	assert.Contains(t, out, "Seasons in dataset:")
}

func TestWriteOffer(t *testing.T) {
	var buf bytes.Buffer
	WriteOffer(&buf, sampleOffer(t), 10)

	out := buf.String()
	assert.Contains(t, out, "QUALIFYING OFFER RESULT")
	assert.Contains(t, out, "Season analyzed:              2024")
	assert.Contains(t, out, "QUALIFYING OFFER: $1,500,000.00")
	assert.Contains(t, out, "Smith, Alex")
	assert.Contains(t, out, "$2,000,000.00")
	assert.NotContains(t, out, "plus")
}

func TestWriteOffer_PreviewTruncates(t *testing.T) {
	var buf bytes.Buffer
	WriteOffer(&buf, sampleOffer(t), 1)

	out := buf.String()
	assert.Contains(t, out, "Top 1 Earners")
	assert.Contains(t, out, "... plus 1 more")
	assert.NotContains(t, out, "Jones, Sam")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleOffer(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"rank", "player", "salary", "season", "league"}, rows[0])
	assert.Equal(t, []string{"1", "Smith, Alex", "2000000.00", "2024", "MLB"}, rows[1])
	assert.Equal(t, []string{"2", "Jones, Sam", "1000000.00", "2024", "MLB"}, rows[2])
}
