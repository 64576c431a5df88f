// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diagdiff/internal/history"
	"github.com/pdiddy/diagdiff/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded runs",
	Long: `History lists runs recorded with --record, newest first. Use --export
to write them as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")
	exportFormat, _ := cmd.Flags().GetString("export")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if exportFormat != "" {
		return store.Export(ctx, out, exportFormat, limit)
	}

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	return formatHistoryOutput(out, runs, jsonOutput)
}

func formatHistoryOutput(w io.Writer, runs []types.Run, jsonOutput bool) error {
	if jsonOutput {
		if runs == nil {
			runs = []types.Run{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-7s  %-5s  %-5s  %-10s  %s\n",
		"ID", "Time", "Mode", "Rows", "Width", "Difference", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range runs {
		source := r.Source
		if len(source) > 20 {
			source = "..." + source[len(source)-17:]
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-7s  %-5d  %-5d  %-10d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Rows, r.Width, r.Difference, source)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to show (0 = use default)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("export", "", "export runs: yaml or json")
	historyCmd.Flags().Int("max-results", 20, "default number of runs listed")

	mustBind("history.max_results", historyCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(historyCmd)
}
