package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"exifsort/internal/app"
	"exifsort/internal/config"
)

const (
	exitOK         = 0
	exitSetup      = 1
	exitInvocation = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "exifsort:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var inv *app.InvocationError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &inv):
		return exitInvocation
	default:
		return exitSetup
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfig reads the config file (flag, env or default path) and applies
// command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	path := defaults["config_path"]
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		path = p
	}

	cfg, err := config.Load(path, defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("link") {
		cfg.Link.Type, _ = cmd.Flags().GetString("link")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, &app.InvocationError{Err: err}
	}
	return cfg, nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &app.InvocationError{Err: fmt.Errorf("expected %d arguments, got %d\nusage: %s", n, len(args), usage)}
		}
		return nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "exifsort INPUT OUTPUT",
	Short: "Sort photos into dated folders by their EXIF capture time",
	Long: `exifsort walks INPUT, reads the capture time embedded in each file and
links the file into OUTPUT/YYYY/YYYY-MM-Month/YYYY-MM-DD/. Source files are
never modified. Files without capture metadata are left alone.`,
	Args:          exactArgs(2, "exifsort INPUT OUTPUT"),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		a, err := app.NewSortApp(cfg, "sort", args...)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		var progress *progressObserver
		if isTerminal(os.Stderr) {
			progress = newProgressObserver(os.Stderr)
		}

		report, runErr := a.Sort(cmd.Context(), args[0], args[1], observerOrNil(progress))
		if progress != nil {
			progress.finish()
		}
		if runErr != nil {
			return runErr
		}

		printSummary(cmd.OutOrStdout(), report, isTerminal(os.Stdout))
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan INPUT",
	Short: "Show where each file would be linked, without changing anything",
	Args:  exactArgs(1, "exifsort plan INPUT"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		a, err := app.NewSortApp(cfg, "plan", args...)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		plan, err := a.Plan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), plan, isTerminal(os.Stdout))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Args:  exactArgs(0, "exifsort config init"),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		path := defaults["config_path"]
		if p, _ := cmd.Flags().GetString("config"); p != "" {
			path = p
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View the effective configuration",
	Args:  exactArgs(0, "exifsort config list"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m := &config.Manager{}
		return m.Write(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &app.InvocationError{Err: err}
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default $EXIFSORT_CONFIG_PATH or ~/.config/exifsort.toml)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "parallel workers (0 = one per CPU)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.Flags().String("link", "", "link type: symlink, hardlink or copy")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
}
