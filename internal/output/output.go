// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders results and writes them to a file or stream.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diagdiff/internal/logging"
	"github.com/pdiddy/diagdiff/pkg/types"
)

// EnvPath names the environment variable holding the result file path.
const EnvPath = "OUTPUT_PATH"

// Render writes res to w. Plain format is the difference and a newline.
func Render(w io.Writer, res types.Result, format types.OutputFormat) error {
	switch format {
	case types.OutputPlain, "":
		_, err := fmt.Fprintf(w, "%d\n", res.Difference)
		return err
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q: use plain, json, or yaml", format)
	}
}

// Write renders res to cfg.Path, or to stdout when the path is empty.
// Writes to a regular or missing file are atomic: readers see either the old
// file or the complete new one. Symlinks and devices are written through.
func Write(cfg types.OutputConfig, res types.Result, stdout io.Writer) error {
	if cfg.Path == "" {
		return Render(stdout, res, cfg.Format)
	}

	logger := logging.WithComponent("output")

	if fi, err := os.Lstat(cfg.Path); err == nil && !fi.Mode().IsRegular() {
		if err := writeThrough(cfg, res); err != nil {
			return err
		}
		logger.Debug().Str("path", cfg.Path).Str("mode", fi.Mode().String()).Msg("result written through")
		return nil
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	pending, err := renameio.NewPendingFile(cfg.Path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("creating pending output file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if err := Render(pending, res, cfg.Format); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", cfg.Path, err)
	}

	logger.Debug().Str("path", cfg.Path).Int64("difference", res.Difference).Msg("result written")
	return nil
}

// writeThrough opens the existing path for writing so symlinks keep pointing
// at their target and devices receive the bytes directly.
func writeThrough(cfg types.OutputConfig, res types.Result) error {
	var buf bytes.Buffer
	if err := Render(&buf, res, cfg.Format); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	if err := os.WriteFile(cfg.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Path, err)
	}
	return nil
}
