package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/zqx"
	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/config"
	"github.com/arloliu/zqx/metrics"
	"github.com/arloliu/zqx/render"
	"github.com/arloliu/zqx/store"
	"github.com/arloliu/zqx/table"
)

func generateCmd(a *app) *cobra.Command {
	var override config.Config

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assign codes and write every configured output",
		Long: `Generate assigns codes to the lexicon, checks every invariant and writes
the outputs named in the configuration or on the command line. Nothing is
written except metrics when an invariant is violated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Merge(&override)
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return a.generate(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&override.Lexicon.Path, "lexicon", "", "Lexicon YAML file (default: embedded lexicon)")
	f.StringVar(&override.Output.Markdown, "markdown", "", "Markdown output path")
	f.StringVar(&override.Output.Table, "table", "", "Binary table output path")
	f.StringVar(&override.Output.SQLite, "sqlite", "", "SQLite database output path")
	f.StringVar(&override.Output.Metrics, "metrics", "", "Prometheus textfile output path")
	f.StringVar(&override.Table.Compression, "compression", "", "Table compression (none, zstd, s2, lz4, xz)")
	f.StringVar(&override.Table.ByteOrder, "byte-order", "", "Table byte order (little, big)")
	f.StringVar(&override.Render.Title, "title", "", "Markdown document title")

	return cmd
}

func (a *app) generate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	lex, err := a.lexicon()
	if err != nil {
		return err
	}
	excl, err := a.exclusionSet()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := zqx.Build(lex, assign.WithExclusionSet(excl))
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	elapsed := time.Since(start)

	counts := res.Assignment.Counts()
	a.logger.Info("Assigned codes",
		slog.Int("tier1", counts.Tier1),
		slog.Int("tier2", counts.Tier2),
		slog.Int("tier3", counts.Tier3),
		slog.Int("total", counts.Total()),
		slog.Duration("elapsed", elapsed))

	recorder := metrics.NewRecorder()
	recorder.ObserveAssignment(res.Assignment, res.Space)
	recorder.ObserveReport(res.Report)
	recorder.ObserveRun(elapsed, time.Now())

	if !res.Report.OK() {
		for _, v := range res.Report.List() {
			a.logger.Error("Invariant violated",
				slog.String("kind", v.Kind.String()),
				slog.String("word", v.Word),
				slog.String("code", v.Code))
		}
		if err := a.writeMetrics(recorder); err != nil {
			a.logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
		}

		return fmt.Errorf("%d invariant violations: %w", res.Report.Violations(), res.Report.Err())
	}

	if err := a.writeMarkdown(res, excl); err != nil {
		return err
	}

	digest, err := a.writeTable(res, excl)
	if err != nil {
		return err
	}

	if err := a.writeSQLite(ctx, res, digest); err != nil {
		return err
	}

	if err := a.writeMetrics(recorder); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Tier-1 words: %d\n", counts.Tier1)
	fmt.Fprintf(a.out, "Additional words: %d\n", counts.Tier2+counts.Tier3)
	fmt.Fprintf(a.out, "Total mapped: %d\n", counts.Total())

	return nil
}

func (a *app) writeMarkdown(res *zqx.Result, excl codespace.ExclusionSet) (err error) {
	path := a.cfg.Output.Markdown
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	err = render.Markdown(f, res.Assignment,
		render.WithTitle(a.cfg.Render.Title),
		render.WithExclusionSet(excl),
		render.WithQuickReference(a.cfg.Render.QuickReference...),
	)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	a.logger.Info("Wrote markdown", slog.String("path", path))

	return nil
}

// writeTable returns the BLAKE3 digest of the written file, or "" when no
// table output is configured.
func (a *app) writeTable(res *zqx.Result, excl codespace.ExclusionSet) (string, error) {
	path := a.cfg.Output.Table
	if path == "" {
		return "", nil
	}

	compression, _ := a.cfg.CompressionType()
	order, _ := a.cfg.ByteOrder()

	data, err := table.Encode(res.Assignment,
		table.WithCompression(compression),
		table.WithByteOrder(order),
		table.WithExclusionSet(excl),
	)
	if err != nil {
		return "", fmt.Errorf("encode table: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("write table: %w", err)
	}

	digest := table.Digest(data)
	a.logger.Info("Wrote table",
		slog.String("path", path),
		slog.String("compression", compression.String()),
		slog.Int("bytes", len(data)),
		slog.String("blake3", digest))

	return digest, nil
}

func (a *app) writeSQLite(ctx context.Context, res *zqx.Result, digest string) error {
	path := a.cfg.Output.SQLite
	if path == "" {
		return nil
	}

	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	meta := map[string]string{
		"generator":    appName + " " + Version,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"fingerprint":  fmt.Sprintf("%016x", res.Assignment.Fingerprint()),
		"entries":      strconv.Itoa(res.Assignment.Len()),
	}
	if digest != "" {
		meta["table_blake3"] = digest
	}

	if err := s.Save(ctx, res.Assignment, meta); err != nil {
		return err
	}
	a.logger.Info("Wrote database", slog.String("path", path))

	return nil
}

func (a *app) writeMetrics(recorder *metrics.Recorder) error {
	path := a.cfg.Output.Metrics
	if path == "" {
		return nil
	}

	if err := recorder.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug("Wrote metrics", slog.String("path", path))

	return nil
}
