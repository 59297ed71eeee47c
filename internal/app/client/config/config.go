package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "http://localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".word-assistant"
	defaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

	// Sync timing mirrors the web client: a short trailing debounce
	// after local edits plus a coarse periodic pass.
	defaultDebounceMillis   = 2000
	defaultSyncIntervalSecs = 300
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	ServerAddress  string `mapstructure:"server_address"`
	DictionaryURL  string `mapstructure:"dictionary_url"`
	LogLevel       string `mapstructure:"log_level"`
	ConfigDir      string `mapstructure:"config_dir"`
	DataPath       string `mapstructure:"data_path"`
	DebounceMillis int    `mapstructure:"sync_debounce_millis"`
	SyncInterval   int    `mapstructure:"sync_interval_seconds"`
}

// MustLoad loads the client configuration from the environment and
// prepares the config directory under the user's home.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("DICTIONARY_URL", defaultDictionaryURL)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("SYNC_DEBOUNCE_MILLIS", defaultDebounceMillis)
	viper.SetDefault("SYNC_INTERVAL_SECONDS", defaultSyncIntervalSecs)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	config := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		DictionaryURL:  viper.GetString("DICTIONARY_URL"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataPath:       filepath.Join(configDir, "data.db"),
		DebounceMillis: viper.GetInt("SYNC_DEBOUNCE_MILLIS"),
		SyncInterval:   viper.GetInt("SYNC_INTERVAL_SECONDS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	if c.DebounceMillis <= 0 {
		return fmt.Errorf("sync_debounce_millis must be positive")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
