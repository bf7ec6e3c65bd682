package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(e env) MetricsConfig {
	return MetricsConfig{
		Enabled:      e.MetricsEnabled.or(true),
		Port:         orDefault(e.MetricsPort, defaultMetricsPort),
		OtlpEndpoint: orDefault(e.OtelEndpoint, ""),
		ServiceName:  orDefault(e.OtelService, defaultServiceName),
		OtlpInsecure: e.OtelInsecure.or(true),
	}
}
