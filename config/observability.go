package config

import "strings"

// StatsDConfig controls metric emission to a StatsD/DogStatsD agent.
type StatsDConfig struct {
	Enabled bool   `env:"STATSD_ENABLED" envDefault:"false"`
	Address string `env:"STATSD_ADDR"    envDefault:"127.0.0.1:8125"`
	Prefix  string `env:"STATSD_PREFIX"  envDefault:"jokeboard"`
}

// Sanitize trims the address and prefix.
func (s *StatsDConfig) Sanitize() {
	s.Address = strings.TrimSpace(s.Address)
	s.Prefix = strings.Trim(strings.TrimSpace(s.Prefix), ".")
}
