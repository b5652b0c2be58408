package runner

import "time"

const (
	metricsReadTimeout = 5 * time.Second
	metricsIdleTimeout = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
