package config

import (
	"errors"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default configuration invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "negative max chains", mutate: func(c *Config) { c.MaxChains = -1 }, wantErr: ErrInvalidMaxChains},
		{name: "negative max operations", mutate: func(c *Config) { c.MaxOperationsPerChain = -5 }, wantErr: ErrInvalidMaxOperations},
		{name: "negative max line bytes", mutate: func(c *Config) { c.MaxLineBytes = -1 }, wantErr: ErrInvalidMaxLineBytes},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrInvalidLogLevel},
		{name: "zero disables limits", mutate: func(c *Config) { c.MaxChains = 0; c.MaxOperationsPerChain = 0 }, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
