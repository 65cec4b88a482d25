package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/offer-cli/internal/config"
	"github.com/sells-group/offer-cli/internal/salary/htmldoc"
)

func TestSelectorsFromConfig_EmptyFallsBackToDefaults(t *testing.T) {
	sel := selectorsFromConfig(config.SelectorConfig{})
	assert.Equal(t, htmldoc.DefaultSelectors(), sel)
}

func TestSelectorsFromConfig_Overrides(t *testing.T) {
	sel := selectorsFromConfig(config.SelectorConfig{
		Rows:   "table.pay tr",
		Amount: ".amt",
	})
	assert.Equal(t, "table.pay tr", sel.Rows)
	assert.Equal(t, ".amt", sel.Amount)
	// Unset roles keep defaults.
	assert.Equal(t, ".player-name", sel.Player)
	assert.Equal(t, ".player-level", sel.League)
}

func TestLoadMarkup_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.html")
	require.NoError(t, os.WriteFile(path, []byte("<table></table>"), 0644))

	got, err := loadMarkup(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", got)
}

func TestLoadMarkup_MissingFile(t *testing.T) {
	_, err := loadMarkup(context.Background(), filepath.Join(t.TempDir(), "missing.html"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read markup file")
}
