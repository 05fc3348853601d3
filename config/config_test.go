package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, "USD", c.Settings.Currency)
	assert.Equal(t, "FTMO", c.Settings.PropFirm)
	assert.Equal(t, "Tuesday", c.Settings.Day)
	assert.Equal(t, "London", c.Settings.Session)
	assert.InDelta(t, 10000, c.StartingBalance, 1e-9)
	assert.Equal(t, "faireconomy-json", c.Calendar.Provider)
	assert.Equal(t, 5*time.Minute, c.Calendar.Refresh)
	assert.Equal(t, 6*time.Hour, c.Calendar.DiskTTL)
	assert.NoError(t, c.Validate())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propfire.yaml")
	body := `
settings:
  currency: EUR
  day: Friday
starting_balance: 25000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", c.Settings.Currency)
	assert.Equal(t, "Friday", c.Settings.Day)
	assert.InDelta(t, 25000, c.StartingBalance, 1e-9)
	// Untouched fields keep defaults.
	assert.Equal(t, "FTMO", c.Settings.PropFirm)
	assert.Equal(t, "London", c.Settings.Session)
}

func TestLoadJSONFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propfire.json")
	body := `{"settings": {"currency": "GBP", "session": "New York"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP", c.Settings.Currency)
	assert.Equal(t, "New York", c.Settings.Session)
}

func TestLoadRejectsInvalidEnums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"currency", `{"settings": {"currency": "BTC"}}`},
		{"prop firm", `{"settings": {"prop_firm": "AcmeFunding"}}`},
		{"day", `{"settings": {"day": "Saturday"}}`},
		{"session", `{"settings": {"session": "Sydney"}}`},
		{"balance", `{"starting_balance": -5}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	t.Parallel()

	c, used, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, used)
	assert.Equal(t, Default(), c)
}

func TestLoadOrDefaultRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	// An existing file with a bad selection must block, not quietly
	// run with FTMO's window.
	path := filepath.Join(t.TempDir(), "propfire.json")
	body := `{"settings": {"prop_firm": "AcmeFunding"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, used, err := LoadOrDefault(path)
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, used)
	assert.Nil(t, c)
}

func TestLoadOrDefaultRejectsUnparseableFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propfire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [not: a: map"), 0o644))

	c, used, err := LoadOrDefault(path)
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, used)
	assert.Nil(t, c)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propfire.json")

	c := Default()
	c.Settings.Currency = "JPY"
	c.StartingBalance = 42000
	require.NoError(t, c.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "JPY", got.Settings.Currency)
	assert.InDelta(t, 42000, got.StartingBalance, 1e-9)
}
