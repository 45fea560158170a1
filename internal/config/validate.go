package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Primary != "" {
		if _, err := pipeline.ParseDimension(cfg.Primary); err != nil {
			errs = append(errs, fmt.Sprintf("primary: %v", err))
		}
	}

	if y := cfg.Years; y != nil {
		if y.Min < 0 || y.Max < 0 {
			errs = append(errs, fmt.Sprintf("years: bounds must be non-negative, got %d..%d", y.Min, y.Max))
		}
		if y.Min != 0 && y.Max != 0 && y.Min > y.Max {
			errs = append(errs, fmt.Sprintf("years: min %d is after max %d", y.Min, y.Max))
		}
	}

	if cfg.Serve.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(cfg.Serve.ReadHeaderTimeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Sprintf("serve.read_header_timeout: invalid duration %q", cfg.Serve.ReadHeaderTimeout))
		}
	}

	if cfg.LLM.MaxTokens < 0 {
		errs = append(errs, fmt.Sprintf("llm.max_tokens: must be non-negative, got %d", cfg.LLM.MaxTokens))
	}

	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format: invalid value %q (must be text or json)", cfg.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
