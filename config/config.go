package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Markets to track, each entry either "name" or "name:YYYY-MM-DD"
	// where the date is the earliest day backfill will reach
	Markets []string `yaml:"markets"`

	// Currencies every price record is quoted in
	Currencies []string `yaml:"currencies"`

	Database DatabaseConfig `yaml:"database"`
	Backfill BackfillConfig `yaml:"backfill"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	API      APIConfig      `yaml:"api"`

	TokensFile string `yaml:"tokens_file"`
	APITokens  *APITokens

	// OverrideCoingeckoURL replaces the CoinGecko base URL, used in tests
	OverrideCoingeckoURL string `yaml:"override_coingecko_url"`
}

// DefaultMarkets mirror the original deployment and are used when the
// config lists none
var DefaultMarkets = []string{"bitcoin", "ethereum"}

// DefaultCurrencies are used when the config lists none
var DefaultCurrencies = []string{"eur", "usd", "rub", "cny", "cad", "jpy", "gbp"}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	apiTokens, err := LoadAPITokens(config.TokensFile)
	if err != nil {
		log.Printf("Config: error loading API tokens from %s: %v, using public API without authentication",
			config.TokensFile, err)
		config.APITokens = &APITokens{Tokens: []string{}}
	} else {
		config.APITokens = apiTokens
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if len(c.Markets) == 0 {
		c.Markets = append([]string{}, DefaultMarkets...)
	}
	if len(c.Currencies) == 0 {
		c.Currencies = append([]string{}, DefaultCurrencies...)
	}
	c.Database.applyDefaults()
	c.Backfill.applyDefaults()
	c.Snapshot.applyDefaults()
	c.API.applyDefaults()
}

// ParsedMarkets returns the configured market list with earliest dates resolved
func (c *Config) ParsedMarkets() []Market {
	markets := make([]Market, 0, len(c.Markets))
	for _, spec := range c.Markets {
		markets = append(markets, ParseMarket(spec))
	}
	return markets
}
