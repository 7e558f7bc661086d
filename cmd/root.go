package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/xselect/internal/app"
	"github.com/zjrosen/xselect/internal/config"
	"github.com/zjrosen/xselect/internal/log"
	"github.com/zjrosen/xselect/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".xselect/config.yaml"
	defaultLogPath  = "debug.log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "xselect",
	Short:   "Accessible dropdown selection in the terminal",
	Long:    `xselect renders the dropdowns declared in its config file as a keyboard and mouse driven form.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .xselect/config.yaml or ~/.config/xselect/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write debug logs (also XSELECT_DEBUG=1); file from XSELECT_LOG or ./debug.log")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the form when the config file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindEnv("debug", "XSELECT_DEBUG")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if path := configFileFor(cfgFile); path != "" {
		viper.SetConfigFile(path)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "xselect"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .xselect/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configFileFor returns the config file to read: the explicit path when
// given, else .xselect/config.yaml when it exists. An empty result means the
// user config directory should be searched.
func configFileFor(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	return ""
}

// logPath returns the debug log destination.
func logPath() string {
	if p := os.Getenv("XSELECT_LOG"); p != "" {
		return p
	}
	return defaultLogPath
}

// themeFor converts the config theme into the styles package form.
func themeFor(t config.ThemeConfig) styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

func runApp(cmd *cobra.Command, args []string) error {
	if viper.GetBool("debug") {
		cleanup, err := log.InitWithTeaLog(logPath(), "xselect")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Theme.Preset != "" || len(cfg.Theme.Colors) > 0 {
		if err := styles.ApplyTheme(themeFor(cfg.Theme)); err != nil {
			return fmt.Errorf("applying theme: %w", err)
		}
	}

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	configFilePath := viper.ConfigFileUsed()

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configFilePath,
		Watch:      !noWatch,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// Close the final model: it holds the values to save
	if m, ok := final.(app.Model); ok {
		model = m
	}
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
