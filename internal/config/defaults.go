package config

const (
	defaultConfigPath          = "~/.config/platefix/config.toml"
	defaultDataDir             = "~/.local/share/platefix"
	defaultLogDir              = "~/.local/share/platefix/logs"
	defaultTimeWindowMinutes   = 5
	defaultSimilarityThreshold = 70.0
	defaultStoreTimeoutSeconds = 30
	defaultGeneratorRecords    = 100
	defaultReadingGapSeconds   = 20
	defaultPairGapSeconds      = 60
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Detection: Detection{
			TimeWindowMinutes:   defaultTimeWindowMinutes,
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		Storage: Storage{
			TimeoutSeconds: defaultStoreTimeoutSeconds,
		},
		Ingest: Ingest{
			NormalizePlates: true,
		},
		Generator: Generator{
			Records:           defaultGeneratorRecords,
			ReadingGapSeconds: defaultReadingGapSeconds,
			PairGapSeconds:    defaultPairGapSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
