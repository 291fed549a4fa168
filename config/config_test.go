package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig(t *testing.T, content string) string {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := createTestConfig(t, `
markets:
  - bitcoin:2021-01-01
  - ethereum
currencies:
  - usd
  - eur
database:
  host: db.internal
  max_conns: 10
backfill:
  enabled: true
  no_gaps: true
  request_interval: 2s
snapshot:
  ttl: 1m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bitcoin:2021-01-01", "ethereum"}, cfg.Markets)
	assert.Equal(t, []string{"usd", "eur"}, cfg.Currencies)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.True(t, cfg.Backfill.NoGaps)
	assert.Equal(t, 2*time.Second, cfg.Backfill.RequestInterval)
	assert.Equal(t, time.Minute, cfg.Snapshot.TTL)
	assert.NotNil(t, cfg.APITokens)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := createTestConfig(t, "{}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultMarkets, cfg.Markets)
	assert.Equal(t, DefaultCurrencies, cfg.Currencies)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Database.MaxConns)
	assert.Equal(t, time.Second, cfg.Backfill.RequestInterval)
	assert.Equal(t, 5*time.Minute, cfg.Snapshot.TTL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParseMarket(t *testing.T) {
	startOfYear := time.Date(time.Now().UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		spec         string
		wantName     string
		wantEarliest time.Time
	}{
		{
			name:         "name with earliest date",
			spec:         "bitcoin:2021-06-15",
			wantName:     "bitcoin",
			wantEarliest: time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "name only falls back to start of year",
			spec:         "ethereum",
			wantName:     "ethereum",
			wantEarliest: startOfYear,
		},
		{
			name:         "unparsable date falls back to start of year",
			spec:         "bitcoin:junk",
			wantName:     "bitcoin",
			wantEarliest: startOfYear,
		},
		{
			name:         "surrounding whitespace is trimmed",
			spec:         " bitcoin : 2022-01-02 ",
			wantName:     "bitcoin",
			wantEarliest: time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ParseMarket(tt.spec)
			assert.Equal(t, tt.wantName, m.Name)
			assert.Equal(t, tt.wantEarliest, m.Earliest)
		})
	}
}

func TestParsedMarkets(t *testing.T) {
	cfg := &Config{Markets: []string{"bitcoin:2020-01-01", "ethereum:2021-01-01"}}

	markets := cfg.ParsedMarkets()
	assert.Len(t, markets, 2)
	assert.Equal(t, "bitcoin", markets[0].Name)
	assert.Equal(t, "ethereum", markets[1].Name)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), markets[0].Earliest)
}

func TestLoadAPITokens_MissingFile(t *testing.T) {
	tokens, err := LoadAPITokens("no-such-tokens.json")
	require.NoError(t, err)
	assert.Empty(t, tokens.Tokens)
}
