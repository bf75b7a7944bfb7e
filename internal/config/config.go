package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	In            string
	Out           string
	RPCURL        string
	PgDSN         string
	TokenMetaFile string
	RoleNamesFile string

	FeeManager       string
	Exchange         string
	TokenFactory     string
	PolicyRegistry   string
	NonceManager     string
	FeeLiquidityPool string

	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EVENTSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out", "")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		In:               v.GetString("in"),
		Out:              v.GetString("out"),
		RPCURL:           v.GetString("rpc"),
		PgDSN:            v.GetString("pg-dsn"),
		TokenMetaFile:    v.GetString("token-meta"),
		RoleNamesFile:    v.GetString("role-names"),
		FeeManager:       v.GetString("fee-manager"),
		Exchange:         v.GetString("exchange"),
		TokenFactory:     v.GetString("token-factory"),
		PolicyRegistry:   v.GetString("policy-registry"),
		NonceManager:     v.GetString("nonce-manager"),
		FeeLiquidityPool: v.GetString("fee-pool"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}
