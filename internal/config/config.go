// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error sentinels.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the metrics/health HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// ExportDir holds the daily Health Auto Export JSON files.
	ExportDir string `koanf:"export_dir"`

	// StatePath locates the processed-marker state file.
	StatePath string `koanf:"state_path"`

	// Date overrides the batch date (YYYY-MM-DD). Empty means today.
	Date string `koanf:"date"`

	// NameMarkers select which workout names count as tennis.
	NameMarkers []string `koanf:"name_markers"`

	// MinDurationSeconds excludes warmups and accidental recordings.
	MinDurationSeconds int `koanf:"min_duration_seconds"`

	// ProcessedHistorySize bounds the remembered workout ID history.
	ProcessedHistorySize int `koanf:"processed_history_size"`

	// ZoneLower and ZoneUpper bound the moderate heart-rate zone as
	// fractions of max heart rate.
	ZoneLower float64 `koanf:"zone_lower"`
	ZoneUpper float64 `koanf:"zone_upper"`

	// ReportLatencyMinMS and ReportLatencyMaxMS simulate the external
	// report collaborator's latency bounds.
	ReportLatencyMinMS int `koanf:"report_latency_min_ms"`
	ReportLatencyMaxMS int `koanf:"report_latency_max_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9090",
		ExportDir:            "exports",
		StatePath:            "state/processed_marker.json",
		NameMarkers:          []string{"Tennis", "网球"},
		MinDurationSeconds:   180,
		ProcessedHistorySize: 200,
		ZoneLower:            0.70,
		ZoneUpper:            0.85,
		ReportLatencyMinMS:   80,
		ReportLatencyMaxMS:   150,
	}
}
