// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package config loads the agent's TOML configuration file (spec.md §6),
// grounded on the teacher's viper-backed config loading
// (cmd/agent/common/test_helpers.go).
package config

import (
	"fmt"
	"net/url"

	"github.com/DataDog/viper"
)

// Config is the agent's parsed configuration.
type Config struct {
	Agent struct {
		ID uint32 `mapstructure:"id"`
	} `mapstructure:"agent"`
	Controller struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"controller"`
	Collector struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"collector"`
}

// Load reads and validates the TOML file at path (spec.md §6). A missing
// file, a parse failure, or a malformed controller/collector URL all
// produce the same class of error; the caller maps it to the configuration
// exit code.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.stripSchemes(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	return &cfg, nil
}

// stripSchemes validates the controller/collector URLs and rewrites each to
// a bare host:port gRPC dial target. The TOML file spells them as full URLs
// for an operator's readability, but grpc.NewClient has no "http"/"https"
// resolver scheme, so grpcclient.Dial must never see one.
func (c *Config) stripSchemes() error {
	host, err := hostPort(c.Controller.URL)
	if err != nil {
		return fmt.Errorf("controller.url: %w", err)
	}
	c.Controller.URL = host

	host, err = hostPort(c.Collector.URL)
	if err != nil {
		return fmt.Errorf("collector.url: %w", err)
	}
	c.Collector.URL = host

	return nil
}

func hostPort(raw string) (string, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("%q has no host", raw)
	}
	return u.Host, nil
}
