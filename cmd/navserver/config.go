package main

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v2"

	"github.com/asgard/wayfarer/deviation"
	"github.com/asgard/wayfarer/stepadvance"
)

// serverConfig is navserver's YAML-file configuration. It is decoded in
// two stages -- raw YAML into a map, then mapstructure into this struct
// -- so that unknown keys are easy to warn about and field renames don't
// require touching the YAML parsing step.
type serverConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`

	StepAdvance struct {
		Kind                      string  `mapstructure:"kind"`
		DistanceM                 float64 `mapstructure:"distance_m"`
		MinHorizontalAccuracyM    float64 `mapstructure:"min_horizontal_accuracy_m"`
		AutomaticAdvanceDistanceM float64 `mapstructure:"automatic_advance_distance_m"`
	} `mapstructure:"step_advance"`

	DeviationTracking struct {
		Kind                    string  `mapstructure:"kind"`
		MinHorizontalAccuracyM  float64 `mapstructure:"min_horizontal_accuracy_m"`
		MaxAcceptableDeviationM float64 `mapstructure:"max_acceptable_deviation_m"`
	} `mapstructure:"deviation_tracking"`
}

func defaultServerConfig() serverConfig {
	var cfg serverConfig
	cfg.ListenAddr = ":8080"
	cfg.StepAdvance.Kind = "relative_line_string_distance"
	cfg.StepAdvance.MinHorizontalAccuracyM = 16
	cfg.StepAdvance.AutomaticAdvanceDistanceM = 10
	cfg.DeviationTracking.Kind = "static_threshold"
	cfg.DeviationTracking.MinHorizontalAccuracyM = 16
	cfg.DeviationTracking.MaxAcceptableDeviationM = 50
	return cfg
}

// loadServerConfig reads .env (if present, for secrets like API keys the
// route adapter might need) and an optional YAML config file at path,
// overlaying it onto the defaults.
func loadServerConfig(path string) (serverConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "navserver: no .env file found, continuing with process environment\n")
	}

	cfg := defaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var asMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &asMap); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := mapstructure.Decode(asMap, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func (c serverConfig) stepAdvanceMode() stepadvance.Mode {
	switch c.StepAdvance.Kind {
	case "manual":
		return stepadvance.Mode{Kind: stepadvance.Manual}
	case "distance_to_end_of_step":
		return stepadvance.Mode{
			Kind:                   stepadvance.DistanceToEndOfStep,
			DistanceM:              c.StepAdvance.DistanceM,
			MinHorizontalAccuracyM: c.StepAdvance.MinHorizontalAccuracyM,
		}
	default:
		return stepadvance.Mode{
			Kind:                      stepadvance.RelativeLineStringDistance,
			MinHorizontalAccuracyM:    c.StepAdvance.MinHorizontalAccuracyM,
			AutomaticAdvanceDistanceM: c.StepAdvance.AutomaticAdvanceDistanceM,
		}
	}
}

func (c serverConfig) deviationTracking() deviation.Tracking {
	switch c.DeviationTracking.Kind {
	case "none":
		return deviation.Tracking{Kind: deviation.None}
	default:
		return deviation.Tracking{
			Kind:                    deviation.StaticThreshold,
			MinHorizontalAccuracyM:  c.DeviationTracking.MinHorizontalAccuracyM,
			MaxAcceptableDeviationM: c.DeviationTracking.MaxAcceptableDeviationM,
		}
	}
}
