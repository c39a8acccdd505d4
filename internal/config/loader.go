package config

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment layout.
const (
	EnvPrefix     = "COURTSIDE_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

const leagueKey = "league"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if COURTSIDE_CONFIG is set
//  3. env (prefix COURTSIDE_)
//
// The league block merges per field: a list given in the file replaces the
// default list, even when empty; an omitted one keeps the default.
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", path), ErrLoadConfig)
		}
	}

	// COURTSIDE_PERIOD_DAYS -> period_days. Flat keys only; the league block
	// comes from the file.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read env"), ErrLoadConfig)
	}

	// Unmarshal over a copy of the defaults; the league block starts empty so
	// file lists and maps replace defaults instead of merging into them.
	cfg := *base
	cfg.League = League{}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode"), ErrLoadConfig)
	}
	cfg.League = cfg.League.withDefaults(base.League, func(key string) bool {
		return k.Exists(leagueKey + "." + key)
	})

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return &cfg, nil
}
