package config

import (
	"net"
	"time"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string

	// MaxGames caps the number of live sessions; 0 means no limit.
	MaxGames int

	// ReadTimeout bounds how long a request may take to arrive.
	ReadTimeout time.Duration

	// LogRequests enables the request logger middleware.
	LogRequests bool
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:        ":8080",
		MaxGames:    1000,
		ReadTimeout: 10 * time.Second,
		LogRequests: true,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		return invalid("bad listen address %q", s.Addr)
	}
	if s.MaxGames < 0 {
		return invalid("max games (%d) must not be negative", s.MaxGames)
	}
	if s.ReadTimeout < 0 {
		return invalid("read timeout (%v) must not be negative", s.ReadTimeout)
	}
	return nil
}
