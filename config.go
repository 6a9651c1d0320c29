package kadmin

import (
	"fmt"
	"time"
)

// Config carries the ambient, per-client defaults the admin engine is
// built around, mirrored on sarama's Config.Admin substructure.
type Config struct {
	Admin struct {
		// Timeout is the default request_timeout (§3 T_req) applied when
		// AdminOptions.request_timeout is left unset.
		Timeout time.Duration

		// Retry controls broker-level retry of the *outer* operation
		// (e.g. re-resolving the controller); admin requests themselves
		// are never retried by the engine (§1 Non-goals), but a caller
		// wrapping submission in a loop reads these the same way
		// sarama's ClusterAdmin.retryOnError does.
		Retry struct {
			Max     int
			Backoff time.Duration
		}
	}

	// Metrics, when non-nil, receives per-API counters and timers
	// (domain-stack wiring, §4.0).
	Metrics MetricsRegistry
}

// NewConfig returns a Config with the same defaults sarama ships:
// a 3s admin timeout and no automatic retries.
func NewConfig() *Config {
	c := &Config{}
	c.Admin.Timeout = 3 * time.Second
	c.Admin.Retry.Max = 0
	c.Admin.Retry.Backoff = 100 * time.Millisecond
	c.Metrics = NewMetricsRegistry()
	return c
}

// Validate checks the config in the same table-driven style as sarama's
// Config.Validate.
func (c *Config) Validate() error {
	if c.Admin.Timeout <= 0 {
		return fmt.Errorf("kadmin: Admin.Timeout must be positive")
	}
	if c.Admin.Retry.Max < 0 {
		return fmt.Errorf("kadmin: Admin.Retry.Max must be >= 0")
	}
	if c.Admin.Retry.Backoff < 0 {
		return fmt.Errorf("kadmin: Admin.Retry.Backoff must be >= 0")
	}
	return nil
}
