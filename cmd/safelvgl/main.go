// Package main implements the safelvgl CLI.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"safelvgl/internal/collect"
	"safelvgl/internal/config"
	"safelvgl/internal/frontend"
	"safelvgl/internal/logutil"
	"safelvgl/internal/lvgl"
	"safelvgl/internal/model"
	"safelvgl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "safelvgl",
	Short: "Generate a thread-safe wrapper API for lvgl",
	Long: `safelvgl parses the lvgl public API through an external C front-end and
emits safe_lvgl.c and safe_lvgl.h: one wrapper per public function, taking a
recursive lock around the forwarded call so the API can be driven from
multiple threads.`,
}

var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
	flagColor   string
)

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (yaml, toml, or json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "log warnings and errors only")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output (auto|on|off)")

	cobra.OnInitialize(setupColor)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func setupColor() {
	switch flagColor {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// setupLogger builds the run logger. Every record carries the run id so
// interleaved runs stay distinguishable in shared logs.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagQuiet {
		level = slog.LevelWarn
	}
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := logutil.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger.With("run_id", uuid.NewString())
}

// addCollectFlags registers the flags shared by every command that needs
// to parse and collect the lvgl API.
func addCollectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("lvgl", "l", "", "path of the lvgl source tree")
	cmd.Flags().StringArray("block", nil, "additional blacklist pattern, matched at the start of the name (repeatable)")
	cmd.Flags().String("frontend", "", "C front-end command emitting a JSON syntax tree")
	cmd.Flags().StringArray("cpp-arg", nil, "additional preprocessor argument (repeatable)")
	cmd.Flags().String("fake-libc", "", "path of the stub libc include directory")
}

// collectConfig builds the effective configuration: defaults, then the
// config file, then whichever shared flags the user set.
func collectConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()
	if flagConfig != "" {
		if err := cfg.LoadFile(flagConfig); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("lvgl") {
		cfg.LVGLPath, _ = flags.GetString("lvgl")
	}
	if flags.Changed("block") {
		extra, _ := flags.GetStringArray("block")
		cfg.Blacklist = append(cfg.Blacklist, extra...)
	}
	if flags.Changed("frontend") {
		cfg.Frontend.Command, _ = flags.GetString("frontend")
	}
	if flags.Changed("cpp-arg") {
		extra, _ := flags.GetStringArray("cpp-arg")
		cfg.Frontend.Args = append(cfg.Frontend.Args, extra...)
	}
	if flags.Changed("fake-libc") {
		cfg.Frontend.FakeLibC, _ = flags.GetString("fake-libc")
	}
	return cfg, nil
}

// collectFunctions runs the front half of a generation: version scan,
// include walk, front-end parse, and collection.
func collectFunctions(cmd *cobra.Command, cfg *config.Config, log *slog.Logger) ([]*model.Function, lvgl.Version, error) {
	ver, err := lvgl.ReadVersion(cfg.LVGLPath)
	if err != nil {
		return nil, lvgl.Version{}, err
	}
	if ver.IsZero() {
		log.Warn("no version macros found, documents will carry 0.0.0", "header", lvgl.EntryHeader)
	} else {
		log.Info("detected lvgl version", "version", ver.String())
	}

	dirs, err := lvgl.IncludeDirs(cfg.LVGLPath)
	if err != nil {
		return nil, ver, err
	}

	runner := &frontend.Runner{
		Command:  cfg.Frontend.Command,
		Args:     cfg.Frontend.Args,
		FakeLibC: cfg.Frontend.FakeLibC,
		Log:      log,
	}
	unit, err := runner.Parse(cmd.Context(), filepath.Join(cfg.LVGLPath, lvgl.EntryHeader), dirs)
	if err != nil {
		return nil, ver, err
	}

	patterns, err := collect.CompilePatterns(cfg.Blacklist)
	if err != nil {
		return nil, ver, err
	}
	funcs := collect.New(patterns, log).Collect(unit)
	log.Info("collected functions", "count", len(funcs))
	return funcs, ver, nil
}

func requireCollectConfig(cfg *config.Config) error {
	if cfg.LVGLPath == "" {
		return errors.New("lvgl path is required")
	}
	if cfg.Frontend.Command == "" {
		return errors.New("front-end command is required")
	}
	return nil
}
