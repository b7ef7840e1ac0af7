package bootstrap

import (
	"log/slog"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/observability/statsd"
)

// NewMetricsClient builds the StatsD client. When metrics are disabled the
// client is still usable and drops everything.
func NewMetricsClient(cfg *config.AppConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled:    cfg.StatsD.Enabled,
		Address:    cfg.StatsD.Address,
		Prefix:     cfg.StatsD.Prefix,
		GlobalTags: statsd.Tags{"env": cfg.Environment},
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if client.Enabled() {
		logger.Info("statsd metrics enabled", "addr", cfg.StatsD.Address, "prefix", cfg.StatsD.Prefix)
	}
	return client, nil
}
