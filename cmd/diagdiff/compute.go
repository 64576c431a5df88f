// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diagdiff/internal/diagonal"
	"github.com/pdiddy/diagdiff/internal/history"
	"github.com/pdiddy/diagdiff/internal/logging"
	"github.com/pdiddy/diagdiff/internal/matrixio"
	"github.com/pdiddy/diagdiff/internal/output"
	"github.com/pdiddy/diagdiff/pkg/types"
)

const stdinSource = "stdin"

func runCompute(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	in, source, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = compute(cmd.Context(), in, source, cfg, cmd.OutOrStdout())
	return err
}

// openInput returns the named file, or stdin for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), stdinSource, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("opening input: %w", err)
	}
	return f, args[0], nil
}

// compute reads one matrix from in, writes its result, and records the run
// when history is enabled.
func compute(ctx context.Context, in io.Reader, source string, cfg types.Config, stdout io.Writer) (types.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithComponent("compute")

	m, err := matrixio.Read(in, cfg.Compute.InputFormat)
	if err != nil {
		return types.Result{}, fmt.Errorf("reading matrix from %s: %w", source, err)
	}

	res, err := diagonal.Compute(m, cfg.Compute.Mode)
	if err != nil {
		return types.Result{}, err
	}
	if res.RowsSkipped > 0 {
		logger.Warn().
			Int("skipped", res.RowsSkipped).
			Int("width", res.Width).
			Msg("rows shorter than the widest row were left out of the sums")
	}
	logger.Debug().
		Str("source", source).
		Int("rows", len(m)).
		Int("width", res.Width).
		Int64("primary", res.Primary).
		Int64("secondary", res.Secondary).
		Msg("computed diagonal difference")

	if err := output.Write(cfg.Output, res, stdout); err != nil {
		return types.Result{}, err
	}

	if cfg.History.Enabled {
		if err := recordRun(ctx, cfg, source, m, res); err != nil {
			return types.Result{}, err
		}
	}
	return res, nil
}

func recordRun(ctx context.Context, cfg types.Config, source string, m types.Matrix, res types.Result) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	mode := cfg.Compute.Mode
	if mode == "" {
		mode = types.ModeWidest
	}
	run, err := store.Record(ctx, types.Run{
		Source:     source,
		Digest:     matrixio.Digest(m),
		Mode:       mode,
		Rows:       len(m),
		Width:      res.Width,
		Difference: res.Difference,
	})
	if err != nil {
		return err
	}
	logger := logging.WithComponent("history")
	logger.Debug().Int64("id", run.ID).Str("digest", run.Digest).Msg("run recorded")
	return nil
}

func init() {
	rootCmd.Flags().String("input-format", "text", "input format: text or yaml")
	rootCmd.Flags().Bool("strict", false, "require a square matrix instead of skipping short rows")
	rootCmd.Flags().StringP("output", "o", "", "result file (default: $OUTPUT_PATH, else stdout)")
	rootCmd.Flags().String("format", "plain", "result format: plain, json, or yaml")
	rootCmd.Flags().Bool("record", false, "record the run in the history database")

	mustBind("compute.input_format", rootCmd.Flags().Lookup("input-format"))
	mustBind("compute.strict", rootCmd.Flags().Lookup("strict"))
	mustBind("output.path", rootCmd.Flags().Lookup("output"))
	mustBind("output.format", rootCmd.Flags().Lookup("format"))
	mustBind("history.enabled", rootCmd.Flags().Lookup("record"))
}
