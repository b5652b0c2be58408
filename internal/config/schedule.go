package config

// ScheduleConfig controls how date ranges are split and fetched.
type ScheduleConfig struct {
	BaseURL     string
	ChunkDays   int
	Concurrency int
}

func loadSchedule() ScheduleConfig {
	return ScheduleConfig{
		BaseURL:     envOrDefault(envScheduleBaseURL, defaultScheduleBaseURL),
		ChunkDays:   intEnvOrDefault(envScheduleChunkDays, defaultChunkDays),
		Concurrency: intEnvOrDefault(envConcurrency, defaultConcurrency),
	}
}
