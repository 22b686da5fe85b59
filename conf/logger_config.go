// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package conf

// LoggerConfig controls the console logger. evmcfg is a one-shot CLI run
// per transaction, so unlike a long-running node it never writes or
// rotates a log file — output always goes to the console.
type LoggerConfig struct {
	// Level is one of: trace, debug, info, warn, error, fatal.
	Level string `json:"level" yaml:"level"`

	// Console enables colorized text output; when false output is plain.
	Console bool `json:"console" yaml:"console"`

	// JSONFormat switches the console formatter to line-delimited JSON,
	// useful when evmcfg's output is piped into another log collector.
	JSONFormat bool `json:"json_format" yaml:"json_format"`
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      "info",
		Console:    true,
		JSONFormat: false,
	}
}

// Validate sets an empty Level to "info" and leaves any other value
// unchanged; log.Init falls back to info for a level it cannot parse. It
// never fails: a CLI tool should never refuse to run over a logging
// misconfiguration.
func (c *LoggerConfig) Validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	return nil
}
