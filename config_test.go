// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		wantErr ConfigErrorKind
	}{
		"burnin at 1.0 out of range": {
			cfg:     Config{BurninFraction: 1, SampleEvery: 1},
			wantErr: ConfigBurninOutOfRange,
		},
		"negative burnin out of range": {
			cfg:     Config{BurninFraction: -0.1, SampleEvery: 1},
			wantErr: ConfigBurninOutOfRange,
		},
		"sample_every zero": {
			cfg:     Config{SampleEvery: 0},
			wantErr: ConfigSampleEveryZero,
		},
		"negative skip_first": {
			cfg:     Config{SkipFirst: -1, SampleEvery: 1},
			wantErr: ConfigBurninOutOfRange,
		},
	}

	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			err := p.cfg.Validate()
			if err == nil {
				t.Fatalf("Validate: expected an error")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate: got %T, want *ConfigError", err)
			}
			if ce.Kind != p.wantErr {
				t.Fatalf("Validate: got kind %v, want %v", ce.Kind, p.wantErr)
			}
		})
	}
}
