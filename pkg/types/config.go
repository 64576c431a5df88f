// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputFormat selects the matrix input encoding.
type InputFormat string

const (
	InputText InputFormat = "text"
	InputYAML InputFormat = "yaml"
)

// OutputFormat selects how a result is rendered.
type OutputFormat string

const (
	// OutputPlain writes the difference as a single integer and a newline.
	OutputPlain OutputFormat = "plain"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ComputeConfig holds settings for the compute command.
type ComputeConfig struct {
	// InputFormat is the encoding of the matrix input (default text).
	InputFormat InputFormat `json:"input_format" yaml:"input_format"`

	// Mode selects widest-row filtering or strict square checking.
	Mode Mode `json:"mode" yaml:"mode"`
}

// OutputConfig holds settings for writing results.
type OutputConfig struct {
	// Path is the destination file. Empty means stdout.
	// Bound to the OUTPUT_PATH environment variable.
	Path string `json:"path" yaml:"path"`

	// Format selects plain, json, or yaml rendering (default plain).
	Format OutputFormat `json:"format" yaml:"format"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled records every computation.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory containing history.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`
}

// Config groups all settings for the diagdiff command.
type Config struct {
	Compute ComputeConfig `json:"compute" yaml:"compute"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
