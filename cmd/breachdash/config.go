package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/config"
)

// Config command flags.
var (
	configGlobal       bool
	configShowDefaults bool
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify breachdash configuration",
	Long: `View and modify breachdash configuration.

breachdash reads .breachdash.yaml (or .breachdash.toml) from the working
directory. A global config at ~/.config/breachdash/config.yaml provides
defaults; project settings override global ones and flags override both.

Note: config set does a YAML round-trip and will not preserve comments.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  breachdash config get dataset
  breachdash config get years.min
  breachdash config get --global llm`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int or string. List keys
(organization_types, methods, columns) take one value, or a YAML flow list
such as '["web, tech", retail]' for several.
By default, writes to .breachdash.yaml in the current directory.
Use --global to write to ~/.config/breachdash/config.yaml.

Examples:
  breachdash config set dataset ./data/breaches.csv
  breachdash config set years.min 2010
  breachdash config set methods '[hacked, "poor security"]'
  breachdash config set --global llm.max_tokens 2048`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List every set configuration value, annotated with whether it comes
from the project config or the global config. Project values override
global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

// configShowCmd prints the effective merged config.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configPathCmd prints where config files are read from.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/breachdash/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/breachdash/config.yaml)")
	configShowCmd.Flags().BoolVar(&configShowDefaults, "defaults", false, "fill unset values with built-in defaults")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

// mergedConfig loads the global and project configs, project winning.
func mergedConfig() (*config.Config, error) {
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return config.Merge(globalCfg, repoCfg), nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configGlobal {
		cfg, err = config.LoadGlobal()
	} else {
		cfg, err = mergedConfig()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]
	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip through Config so an invalid value never reaches disk.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	globalMap, err := configToFlatMap(globalCfg)
	if err != nil {
		return err
	}
	repoMap, err := configToFlatMap(repoCfg)
	if err != nil {
		return err
	}

	sources := make(map[string]string, len(globalMap)+len(repoMap))
	values := make(map[string]any, len(globalMap)+len(repoMap))
	for k, v := range globalMap {
		sources[k], values[k] = "global", v
	}
	for k, v := range repoMap {
		sources[k], values[k] = "project", v
	}

	if len(values) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'breachdash config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, values[k], formatSource(sources[k], globalColor, repoColor))
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig()
	if err != nil {
		return err
	}
	if configShowDefaults {
		cfg = config.WithDefaults(cfg)
	}
	return config.Write(cmd.OutOrStdout(), cfg)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	project, err := filepath.Abs(config.FileName)
	if err != nil {
		project = config.FileName
	}
	_, _ = fmt.Fprintf(w, "global:  %s\n", config.GlobalConfigPath())
	_, _ = fmt.Fprintf(w, "project: %s\n", project)
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// configToFlatMap converts a Config to a flat dot-notation map, omitting
// zero values.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return config.FlattenMap(m, ""), nil
}

func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprint("(global)")
	case "project":
		return repoColor.Sprint("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
