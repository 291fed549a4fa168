package config

// APIConfig controls the read API server
type APIConfig struct {
	// Enabled starts the HTTP server; a backfill-only process leaves
	// this off
	Enabled bool `yaml:"enabled"`

	Port string `yaml:"port"`
}

func (c *APIConfig) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
}
