// Package config loads and holds application configuration.
// Configuration is TOML, resolved from a list of candidate paths.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"susu_ledger_server/pkg/constants"
)

// MainConfig holds basic application settings.
type MainConfig struct {
	AppName string `toml:"appName"` // application name, used in log labels
	Host    string `toml:"host"`    // listen address, e.g. "0.0.0.0"
	Port    int    `toml:"port"`    // listen port, e.g. 8000
	Mode    string `toml:"mode"`    // "dev" or "release"
}

// MysqlConfig holds MySQL connection settings.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"` // empty when auth is disabled
	Db       int    `toml:"db"`
}

// LogConfig holds logging settings; rotation is handled by lumberjack.
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // log directory
	FileName   string `toml:"fileName"`   // log file name
	MaxSize    int    `toml:"maxSize"`    // max size per file (MB)
	MaxBackups int    `toml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge"`     // days rotated files are kept
	Level      string `toml:"level"`      // debug, info, warn, error
}

// KafkaConfig holds settlement message-queue settings.
type KafkaConfig struct {
	SettlementMode   string        `toml:"settlementMode"`   // "channel" or "kafka"
	HostPort         string        `toml:"hostPort"`         // broker address, e.g. "localhost:9092"
	DistributionTopic string       `toml:"distributionTopic"` // completed-distribution events out
	ConfirmationTopic string       `toml:"confirmationTopic"` // funds-confirmed events in
	Partition        int           `toml:"partition"`
	Timeout          time.Duration `toml:"timeout"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret             string `toml:"secret"`             // HMAC secret, 32+ chars recommended
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// SnowflakeConfig holds the node id for id generation.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023, unique per instance in a cluster
}

// EngineConfig holds rotation-engine tunables.
type EngineConfig struct {
	LockWaitMillis int `toml:"lockWaitMillis"` // bounded wait for the per-group lock before Busy
	LockTTLMillis  int `toml:"lockTtlMillis"`  // lock lease; released early on completion
}

// Config aggregates all sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	EngineConfig    `toml:"engineConfig"`
}

// config is the lazily loaded singleton.
var config *Config

// LoadConfig tries each candidate path in order and stops at the first file
// that parses.
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	// local overrides first
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the singleton, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // fall back to zero values when no file is present
	}
	return config
}

// LockWait returns the configured group-lock wait as a duration, with a sane
// default when unset.
func (c *Config) LockWait() time.Duration {
	if c.EngineConfig.LockWaitMillis <= 0 {
		return constants.GROUP_LOCK_WAIT
	}
	return time.Duration(c.EngineConfig.LockWaitMillis) * time.Millisecond
}

// LockTTL returns the configured group-lock lease as a duration.
func (c *Config) LockTTL() time.Duration {
	if c.EngineConfig.LockTTLMillis <= 0 {
		return constants.GROUP_LOCK_TTL
	}
	return time.Duration(c.EngineConfig.LockTTLMillis) * time.Millisecond
}
