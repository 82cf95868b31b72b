// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for the request that fetches the source log.
type HTTPConfig struct {
	// Timeout bounds the whole request including the body read.
	// Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request
	// (e.g. "agora-convert/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConversionConfig holds settings for a single fetch-and-convert run.
type ConversionConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseDir is the directory relative destination paths resolve against.
	// Empty means the directory of the running executable.
	BaseDir string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
