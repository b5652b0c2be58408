package config

// CacheConfig selects where fetched pages are kept. Both stores are off when
// their location is empty; when both are set the database wins.
type CacheConfig struct {
	Dir      string
	DBPath   string
	Rescrape bool
}

// Enabled reports whether any page cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.Dir != "" || c.DBPath != ""
}

func loadCache() CacheConfig {
	return CacheConfig{
		Dir:      envOrDefault(envCacheDir, ""),
		DBPath:   envOrDefault(envCacheDB, ""),
		Rescrape: boolEnvOrDefault(envCacheRescrape, false),
	}
}
