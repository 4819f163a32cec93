// Package config provides configuration for the chess console and server.
package config

import (
	"fmt"
	"io"
	"os"
)

// Verbosity levels.
const (
	Quiet  = 0 // only errors the user must see
	Normal = 1 // notices such as promotion eligibility
	Chatty = 2 // running commentary on every ply
)

// Config holds all program configuration.
type Config struct {
	Verbosity int

	// LoadFile is a move list replayed before the console starts.
	LoadFile string

	// Sub-configurations
	Output  *OutputConfig
	Storage *StorageConfig
	Server  *ServerConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  Normal,
		Output:     NewOutputConfig(),
		Storage:    NewStorageConfig(),
		Server:     NewServerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the stream the board and command replies are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostic stream.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...any) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// Validate checks the configuration and all of its sub-configurations.
func (c *Config) Validate() error {
	if c.Verbosity < Quiet || c.Verbosity > Chatty {
		return invalid("verbosity %d out of range %d..%d", c.Verbosity, Quiet, Chatty)
	}
	if c.Output != nil {
		if err := c.Output.Validate(); err != nil {
			return err
		}
	}
	if c.Storage != nil {
		if err := c.Storage.Validate(); err != nil {
			return err
		}
	}
	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			return err
		}
	}
	return nil
}
