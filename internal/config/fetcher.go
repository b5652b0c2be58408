package config

import "time"

// FetcherConfig controls the HTTP page fetcher chain.
type FetcherConfig struct {
	Timeout       time.Duration
	UserAgent     string
	MaxAttempts   int
	Backoff       time.Duration
	RatePerSecond float64
	Burst         int
}

func loadFetcher() FetcherConfig {
	return FetcherConfig{
		Timeout:       durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		UserAgent:     envOrDefault(envFetchUserAgent, defaultFetchUserAgent),
		MaxAttempts:   intEnvOrDefault(envFetchMaxAttempts, defaultFetchMaxAttempts),
		Backoff:       durationEnvOrDefault(envFetchBackoff, defaultFetchBackoff),
		RatePerSecond: floatEnvOrDefault(envFetchRate, defaultFetchRate),
		Burst:         intEnvOrDefault(envFetchBurst, defaultFetchBurst),
	}
}
