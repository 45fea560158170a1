package config

// Merge layers override on top of base and returns a new Config. Non-zero
// override fields win; zero-value fields fall through to base. Call it as
// Merge(Merge(global, project), cli) to get flag > project > global.
func Merge(base, override *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	merged := *base
	if override == nil {
		return &merged
	}

	if override.Dataset != "" {
		merged.Dataset = override.Dataset
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.Primary != "" {
		merged.Primary = override.Primary
	}

	// Year bounds merge per bound so a project can pin only one end.
	if override.Years != nil {
		years := YearsConfig{}
		if merged.Years != nil {
			years = *merged.Years
		}
		if override.Years.Min != 0 {
			years.Min = override.Years.Min
		}
		if override.Years.Max != 0 {
			years.Max = override.Years.Max
		}
		merged.Years = &years
	}

	if len(override.OrganizationTypes) > 0 {
		merged.OrganizationTypes = override.OrganizationTypes
	}
	if len(override.Methods) > 0 {
		merged.Methods = override.Methods
	}
	if len(override.Columns) > 0 {
		merged.Columns = override.Columns
	}

	if override.Serve.Addr != "" {
		merged.Serve.Addr = override.Serve.Addr
	}
	if override.Serve.ReadHeaderTimeout != "" {
		merged.Serve.ReadHeaderTimeout = override.Serve.ReadHeaderTimeout
	}
	if override.LLM.Model != "" {
		merged.LLM.Model = override.LLM.Model
	}
	if override.LLM.MaxTokens != 0 {
		merged.LLM.MaxTokens = override.LLM.MaxTokens
	}
	if override.Log.Format != "" {
		merged.Log.Format = override.Log.Format
	}

	return &merged
}

// WithDefaults fills unset fields with built-in defaults.
func WithDefaults(cfg *Config) *Config {
	out := Merge(&Config{
		Dataset:      DefaultDataset,
		OutputFormat: DefaultOutputFormat,
		Primary:      "method",
		Serve:        ServeConfig{Addr: DefaultAddr, ReadHeaderTimeout: "5s"},
		Log:          LogConfig{Format: "text"},
	}, cfg)
	return out
}
