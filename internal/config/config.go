// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/hostauth/hostauth/internal/auth"
	"github.com/hostauth/hostauth/internal/groups"
	"github.com/hostauth/hostauth/internal/hostfs"
)

const (
	// FileName is the main config file inside the config directory.
	FileName = "main.toml"

	// EnvConfigJSON holds a JSON document merged over the file config.
	EnvConfigJSON = "HOSTAUTH_CONFIG_JSON"

	defaultName = "hostauth"
)

var validate = validator.New()

// ReadConfig from <path>/main.toml.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		md            toml.MetaData
		JSONConfigEnv string
		err           error
	)

	if path == "" {
		path = "./etc/"
	}

	if md, err = toml.DecodeFile(filepath.Join(path, FileName), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	applyDefaults(&c, md)

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validateConfig(&c)
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	var c Config

	applyDefaults(&c, toml.MetaData{})

	return c
}

// applyDefaults fills every setting the file left out.
// Groups.Native defaults to true, so it is only kept when md says it was set.
func applyDefaults(c *Config, md toml.MetaData) {
	if c.Log.LogLevel == "" {
		c.Log.LogLevel = "info"
	}

	if c.Log.AppName == "" {
		c.Log.AppName = defaultName
	}

	if c.Log.ServiceName == "" {
		c.Log.ServiceName = defaultName
	}

	if c.Auth.Backend == "" {
		c.Auth.Backend = auth.BackendPAM
	}

	if c.Auth.PAMService == "" {
		c.Auth.PAMService = auth.DefaultPAMService
	}

	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = auth.DefaultVerifyTimeout
	}

	if !md.IsDefined("Groups", "Native") {
		c.Groups.Native = true
	}

	if c.Groups.Config == "" {
		c.Groups.Config = groups.DefaultConfigPath
	}

	if c.Groups.ReadTimeout == 0 {
		c.Groups.ReadTimeout = hostfs.DefaultReadTimeout
	}
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// GroupOptions maps the config onto the group resolver options.
func (c *Config) GroupOptions() groups.Options {
	return groups.Options{
		Native:      groups.Bool(c.Groups.Native),
		Config:      c.Groups.Config,
		HostRoot:    c.Auth.HostRoot,
		ReadTimeout: c.Groups.ReadTimeout,
	}
}

// AuthenticatorConfig maps the config onto the credential backend settings.
func (c *Config) AuthenticatorConfig() auth.AuthenticatorConfig {
	return auth.AuthenticatorConfig{
		Backend:     c.Auth.Backend,
		PAMService:  c.Auth.PAMService,
		HostRoot:    c.Auth.HostRoot,
		Timeout:     c.Auth.Timeout,
		ReadTimeout: c.Groups.ReadTimeout,
	}
}

// validateConfig checks the struct tags of the config.
func validateConfig(c *Config) error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if c.Auth.Timeout < time.Millisecond {
		return errors.Wrap(ErrInvalidConfig, "Auth.Timeout is below 1ms, durations need a unit like \"10s\"")
	}

	return nil
}
