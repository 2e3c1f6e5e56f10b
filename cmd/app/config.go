package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"finalproject_backend/internal/model"
	"finalproject_backend/internal/repository"
	"finalproject_backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	TelegramAuth TelegramAuthConfig `yaml:"telegramAuth"`
	Notifier     NotifierConfig     `yaml:"notifier"`
	Quest        QuestConfig        `yaml:"quest"`

	LogLevel string            `yaml:"logLevel"`
	Log      logger.FileConfig `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `yaml:"telegramBotToken"`
	DebugMode        bool   `yaml:"debugMode"`
}

type NotifierConfig struct {
	Enabled bool `yaml:"enabled"`
}

type QuestConfig struct {
	// Timezone is an IANA name; empty means server local time.
	Timezone string       `yaml:"timezone"`
	List     []QuestEntry `yaml:"list"`
}

type QuestEntry struct {
	Type   string `yaml:"type"`
	Title  string `yaml:"title"`
	Target int    `yaml:"target"`
	Reward int    `yaml:"reward"`
}

func (q QuestConfig) Definitions() []model.QuestDefinition {
	defs := make([]model.QuestDefinition, len(q.List))
	for i, d := range q.List {
		defs[i] = model.QuestDefinition{
			Type:   d.Type,
			Title:  d.Title,
			Target: d.Target,
			Reward: d.Reward,
		}
	}
	return defs
}

func (q QuestConfig) Location() (*time.Location, error) {
	if q.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid quest timezone %q: %w", q.Timezone, err)
	}
	return loc, nil
}

func LoadConfig() (*Config, error) {
	return loadConfig(configPath)
}

func loadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(path)
	v.SetConfigType(configFormat)

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("logLevel", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
