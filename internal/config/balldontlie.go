package config

import "time"

// BalldontlieConfig controls how we talk to the balldontlie API.
type BalldontlieConfig struct {
	BaseURL     string
	APIKey      string
	Timezone    string
	MaxPages    int
	MinInterval time.Duration
}

func loadBalldontlie(e env) BalldontlieConfig {
	return BalldontlieConfig{
		BaseURL:     orDefault(e.BdlBaseURL, defaultBdlBaseURL),
		APIKey:      orDefault(e.BdlAPIKey, ""),
		Timezone:    orDefault(e.BdlTimezone, defaultBdlTimezone),
		MaxPages:    e.BdlMaxPages.or(defaultBdlMaxPages),
		MinInterval: e.BdlMinInterval.or(defaultBdlMinInterval),
	}
}
