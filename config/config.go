package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file and config.yaml.
// Environment variables override file settings, with '.' in config
// keys mapped to '_' (database.driver -> DATABASE_DRIVER).
func LoadConfig() {
	// .env first, so its variables are visible to viper. A missing
	// file is fine.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "data/lfg.db")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Config file not found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}
