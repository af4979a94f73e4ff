package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/zqx"
	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/store"
	"github.com/arloliu/zqx/table"
	"github.com/arloliu/zqx/verify"
)

func verifyCmd(a *app) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "verify <table-file>",
		Short: "Decode a table file and check every invariant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			t, err := table.Decode(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			excl, embedded := t.ExclusionSet()
			if !embedded {
				if excl, err = a.exclusionSet(); err != nil {
					return err
				}
			}

			checks := append([]verify.Option{verify.WithTier1Table(codespace.DefaultTier1Table())}, verify.All()...)
			if complete {
				lex, err := a.lexicon()
				if err != nil {
					return err
				}
				checks = append(checks, verify.WithVocabulary(lex.Vocabulary))
			}

			report := verify.CheckAssignment(t.Assignment(), excl, checks...)
			for _, v := range report.List() {
				fmt.Fprintf(a.out, "%s\t%s\t%s\n", v.Kind, v.Word, v.Code)
			}
			if !report.OK() {
				return fmt.Errorf("%s: %d invariant violations: %w", args[0], report.Violations(), report.Err())
			}

			h := t.Header()
			fmt.Fprintf(a.out, "OK: %d records checked (%s, %s), blake3 %s\n",
				report.Checked(), h.Compression, h.ByteOrder(), table.Digest(data))

			return nil
		},
	}

	cmd.Flags().BoolVar(&complete, "complete", false, "Also require every configured lexicon word to be present")

	return cmd
}

func statsCmd(a *app) *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-tier counts, capacities and the assignment fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			excl, err := a.exclusionSet()
			if err != nil {
				return err
			}
			space, err := codespace.NewSpace(excl)
			if err != nil {
				return err
			}

			var asg *assign.Assignment
			if tablePath != "" {
				data, err := os.ReadFile(tablePath)
				if err != nil {
					return err
				}
				t, err := table.Decode(data)
				if err != nil {
					return fmt.Errorf("decode %s: %w", tablePath, err)
				}
				asg = t.Assignment()
			} else {
				res, err := a.build(excl)
				if err != nil {
					return err
				}
				asg = res.Assignment
			}

			printStats(a, asg, space)

			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Read the assignment from a table file instead of generating it")

	return cmd
}

func printStats(a *app, asg *assign.Assignment, space *codespace.Space) {
	counts := asg.Counts()

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tASSIGNED\tCAPACITY\tUTILIZATION")
	for _, tier := range format.Tiers {
		capacity := space.Capacity(tier)
		if tier == format.Tier1 {
			capacity = len(codespace.Tier1Alphabet)
		}
		util := 0.0
		if capacity > 0 {
			util = float64(counts.Of(tier)) / float64(capacity) * 100
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", tier, counts.Of(tier), capacity, util)
	}
	fmt.Fprintf(tw, "total\t%d\t\t\n", counts.Total())
	_ = tw.Flush()

	fmt.Fprintf(a.out, "Tier-1 words: %d\n", counts.Tier1)
	fmt.Fprintf(a.out, "Additional words: %d\n", counts.Tier2+counts.Tier3)
	fmt.Fprintf(a.out, "Fingerprint: %016x\n", asg.Fingerprint())
}

func lookupCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Print the code and tier of each word",
		Long: `Lookup prints "word code tier category" for each word. Words are read
from a SQLite database written by generate when --sqlite is given, otherwise
the configured lexicon is generated in memory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, closeFn, err := a.lookupFunc(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer closeFn()

			var missing []string
			for _, word := range args {
				r, err := lookup(word)
				if errors.Is(err, errs.ErrWordNotFound) {
					missing = append(missing, word)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s\t%s\t%d\t%s\n", r.Word, r.Code, r.Tier, r.Category)
			}

			if len(missing) > 0 {
				return fmt.Errorf("%w: %s", errs.ErrWordNotFound, strings.Join(missing, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "sqlite", "", "SQLite database written by generate")

	return cmd
}

func (a *app) lookupFunc(ctx context.Context, dbPath string) (func(string) (assign.Record, error), func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if dbPath != "" {
		s, err := store.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		lookup := func(word string) (assign.Record, error) {
			return s.Lookup(ctx, word)
		}
		closeFn := func() {
			if err := s.Close(); err != nil {
				a.logger.Warn("Failed to close database", slog.String("error", err.Error()))
			}
		}

		return lookup, closeFn, nil
	}

	excl, err := a.exclusionSet()
	if err != nil {
		return nil, nil, err
	}
	res, err := a.build(excl)
	if err != nil {
		return nil, nil, err
	}
	lookup := func(word string) (assign.Record, error) {
		r, ok := res.Assignment.Lookup(word)
		if !ok {
			return assign.Record{}, errs.ErrWordNotFound
		}

		return r, nil
	}

	return lookup, func() {}, nil
}

// build generates the configured lexicon in memory.
func (a *app) build(excl codespace.ExclusionSet) (*zqx.Result, error) {
	lex, err := a.lexicon()
	if err != nil {
		return nil, err
	}

	res, err := zqx.Build(lex, assign.WithExclusionSet(excl))
	if err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}
	if !res.Report.OK() {
		a.logger.Warn("Assignment has invariant violations", slog.Int("count", res.Report.Violations()))
	}

	return res, nil
}
