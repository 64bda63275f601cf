// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config loads the assetserve configuration from built-in defaults, an
optional TOML configuration file, an optional ".env" file, and finally the
process environment, in increasing order of precedence.

The recognized environment variables are:

  - PORT: the TCP port to listen on.
  - SPA: "true" enables the SPA fallback to "/index.html"; any other value
    disables it.
  - ASSET_ROOT: the directory of the pre-built assets to serve.
  - LOG_LEVEL: one of "debug", "info", "warn", or "error".
  - NOT_FOUND_HEADERS: "true" keeps the computed headers on 404 responses.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Names of the recognized environment variables.
const (
	EnvPort            = "PORT"
	EnvSPA             = "SPA"
	EnvAssetRoot       = "ASSET_ROOT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvNotFoundHeaders = "NOT_FOUND_HEADERS"
)

// Config is the assetserve configuration.
type Config struct {
	Port            int    `toml:"port"`
	Root            string `toml:"root"`
	SPA             bool   `toml:"spa"`
	LogLevel        string `toml:"log_level"`
	NotFoundHeaders bool   `toml:"not_found_headers"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Port:     3000,
		Root:     "./dist",
		LogLevel: "info",
	}
}

// LoadOptions specifies where to load the configuration from, in addition to
// the process environment.
type LoadOptions struct {
	// File optionally names a TOML configuration file; it is an error if the
	// named file doesn't exist.
	File string
	// DotEnv optionally names a ".env" file with environment variable
	// assignments. A missing file is silently ignored; variables already set
	// in the process environment are never overridden.
	DotEnv string
	// Getenv looks up environment variables; it defaults to os.Getenv.
	Getenv func(string) string
}

// Load returns the configuration as specified by the load options and the
// environment, or an error if any source fails to load or the resulting
// configuration is invalid.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()
	if opts.File != "" {
		if _, err := toml.DecodeFile(opts.File, &cfg); err != nil {
			return Config{}, fmt.Errorf("cannot load configuration file: %w", err)
		}
	}
	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load .env file: %w", err)
		}
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var err error
	if port := getenv(EnvPort); port != "" {
		p, perr := strconv.Atoi(port)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("invalid %s %q", EnvPort, port))
		} else {
			cfg.Port = p
		}
	}
	if spa := getenv(EnvSPA); spa != "" {
		cfg.SPA = spa == "true"
	}
	if root := getenv(EnvAssetRoot); root != "" {
		cfg.Root = root
	}
	if level := getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if nfh := getenv(EnvNotFoundHeaders); nfh != "" {
		cfg.NotFoundHeaders = nfh == "true"
	}
	if err = multierr.Append(err, cfg.Validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error listing all invalid configuration settings, or
// nil if the configuration is valid.
func (c Config) Validate() error {
	var err error
	if c.Port < 1 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}
	if c.Root == "" {
		err = multierr.Append(err, errors.New("missing asset root directory"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	return err
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
