// Package main provides the zqxgen binary entry point.
// zqxgen assigns ZQX codes to a lexicon and writes the code table as
// markdown, a compressed binary table, a SQLite database and Prometheus metrics.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/config"
	"github.com/arloliu/zqx/vocab"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "zqxgen"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	level  *slog.LevelVar
	logger *slog.Logger
	cfg    *config.Config
	out    io.Writer
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{level: new(slog.LevelVar), out: stdout}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: a.level}))

	cmd := &cobra.Command{
		Use:   appName,
		Short: "ZQX code table generator",
		Long: `zqxgen assigns a compact code to every word of a lexicon.

Codes come from three tiers:
- tier 1: 36 fixed single-character codes for the most common words
- tier 2: two-letter codes, minus an exclusion set of real English words
- tier 3: three-consonant codes once tier 2 is used up

Configuration is read from ~/.config/zqx/config.yaml, then zqx.yaml in the
working directory or a parent, then --config. Flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		generateCmd(a),
		verifyCmd(a),
		statsCmd(a),
		lookupCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(a.out, "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// setup configures logging and loads the layered configuration. An explicit
// --log-level wins over the configured level.
func (a *app) setup(cmd *cobra.Command) error {
	level, err := config.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.level.Set(level)

	cfg, err := config.NewLoader(a.logger).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if !cmd.Flags().Changed("log-level") {
		level, _ = config.ParseLevel(cfg.Log.Level)
		a.level.Set(level)
	}

	return nil
}

// lexicon returns the configured lexicon, or the embedded one.
func (a *app) lexicon() (*vocab.Lexicon, error) {
	if a.cfg.Lexicon.Path == "" {
		return vocab.Default(), nil
	}

	lex, err := vocab.LoadFile(a.cfg.Lexicon.Path)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", a.cfg.Lexicon.Path, err)
	}
	a.logger.Debug("Loaded lexicon",
		slog.String("path", a.cfg.Lexicon.Path),
		slog.Int("entries", len(lex.Vocabulary)),
		slog.Int("priority", len(lex.Priority)))

	return lex, nil
}

// exclusionSet returns the configured tier-2 exclusion set, or the default.
func (a *app) exclusionSet() (codespace.ExclusionSet, error) {
	if len(a.cfg.Lexicon.Exclusions) == 0 {
		return codespace.DefaultExclusionSet(), nil
	}

	return codespace.NewExclusionSet(a.cfg.Lexicon.Exclusions...)
}
