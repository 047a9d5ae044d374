package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify configuration",
		// Config commands work without opening the database.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupInternalLogger()
			return nil
		},
	}

	cmd.AddCommand(
		newConfigShowCmd(flags),
		newConfigPathCmd(flags),
		newConfigSetCmd(flags),
		newConfigResetCmd(flags),
	)

	return cmd
}

func configFile(flags *globalFlags) string {
	if flags.ConfigPath != "" {
		return flags.ConfigPath
	}
	return config.ResolvePaths().ConfigFile
}

func loadManager(flags *globalFlags) (*config.Manager, error) {
	m, err := config.NewManager(configFile(flags))
	if err != nil {
		return nil, ErrConfig("loading config", err)
	}
	return m, nil
}

func newConfigShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(flags)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(m.AllSettings())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim("# "+m.ConfigPath()))
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configFile(flags))
			return nil
		},
	}
}

func newConfigSetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(flags)
			if err != nil {
				return err
			}
			key := args[0]
			if !m.HasKey(key) {
				return ErrConfig(fmt.Sprintf("unknown key %q", key), fmt.Errorf("valid keys: %v", knownKeys(m)))
			}
			value := config.ParseValue(args[1])
			if err := m.Set(key, value); err != nil {
				return ErrConfig("setting "+key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigResetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset to the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(flags)
			if err != nil {
				return err
			}
			if err := m.Reset(); err != nil {
				return ErrConfig("resetting config", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}
}

func knownKeys(m *config.Manager) []string {
	var keys []string
	var walk func(prefix string, v map[string]any)
	walk = func(prefix string, v map[string]any) {
		for k, val := range v {
			if nested, ok := val.(map[string]any); ok {
				walk(prefix+k+".", nested)
				continue
			}
			keys = append(keys, prefix+k)
		}
	}
	walk("", m.AllSettings())
	sort.Strings(keys)
	return keys
}
