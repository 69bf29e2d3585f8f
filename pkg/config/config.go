package config

// Package config provides a reusable loader for the router's configuration
// files and environment variables. It is versioned so that applications can
// depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/synnergy-labs/swaprouter/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the configuration surface of spec §6.4. It mirrors the
// structure of the YAML files under cmd/config.
type Config struct {
	Router struct {
		MaxHops              int `mapstructure:"max_hops" json:"max_hops"`
		PerRequestDeadlineMs int `mapstructure:"per_request_deadline_ms" json:"per_request_deadline_ms"`
		DefaultSlippageBps   int `mapstructure:"default_slippage_bps" json:"default_slippage_bps"`
	} `mapstructure:"router" json:"router"`

	Graph struct {
		HotTierMinLiquidityUsd  float64 `mapstructure:"hot_tier_min_liquidity_usd" json:"hot_tier_min_liquidity_usd"`
		WarmTierMinLiquidityUsd float64 `mapstructure:"warm_tier_min_liquidity_usd" json:"warm_tier_min_liquidity_usd"`
		EvictThresholdUsd       float64 `mapstructure:"evict_threshold_usd" json:"evict_threshold_usd"`
		RefreshIntervalHotSec   int     `mapstructure:"refresh_interval_hot_sec" json:"refresh_interval_hot_sec"`
		RefreshIntervalWarmSec  int     `mapstructure:"refresh_interval_warm_sec" json:"refresh_interval_warm_sec"`
		ColdCacheTTLSec         int     `mapstructure:"cold_cache_ttl_sec" json:"cold_cache_ttl_sec"`
		ColdCacheSize           int     `mapstructure:"cold_cache_size" json:"cold_cache_size"`
	} `mapstructure:"graph" json:"graph"`

	Adapters struct {
		ConcurrencyPerHost int      `mapstructure:"concurrency_per_host" json:"concurrency_per_host"`
		Enabled            []string `mapstructure:"enabled" json:"enabled"`
		SocketAPIKey       string   `mapstructure:"socket_api_key" json:"socket_api_key"`
	} `mapstructure:"adapters" json:"adapters"`

	Server struct {
		ListenAddr     string `mapstructure:"listen_addr" json:"listen_addr"`
		MetricsAddr    string `mapstructure:"metrics_addr" json:"metrics_addr"`
		ShutdownGraceS int    `mapstructure:"shutdown_grace_s" json:"shutdown_grace_s"`
	} `mapstructure:"server" json:"server"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	// No env prefix or key replacer is set, so an override must be named
	// like the upper-cased dotted key (ROUTER.MAX_HOPS); ROUTER_MAX_HOPS is
	// not read.
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ROUTER_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ROUTER_ENV", ""))
}
