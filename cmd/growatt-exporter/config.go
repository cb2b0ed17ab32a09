package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the exporter configuration, read from a config file and
// GROWATT_* environment variables.
type Config struct {
	Token     string
	ServerURL string
	Port      string
	PlantIDs  []int
	LogLevel  string
}

// loadConfig reads growatt-exporter.yaml from the working directory or
// /etc/growatt-exporter, with environment variables taking precedence
// (GROWATT_TOKEN, GROWATT_SERVER_URL, GROWATT_PORT, GROWATT_PLANT_IDS,
// GROWATT_LOG_LEVEL).
func loadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("growatt-exporter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/growatt-exporter")

	v.SetEnvPrefix("growatt")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"token", "server_url", "port", "plant_ids", "log_level"} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("port", "9522")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Token:     v.GetString("token"),
		ServerURL: v.GetString("server_url"),
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log_level"),
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("token must be set (GROWATT_TOKEN or config file)")
	}

	// plant_ids is a YAML list in the config file but a comma-separated
	// string when set through the environment
	switch v.Get("plant_ids").(type) {
	case nil:
	case string:
		ids, err := parsePlantIDs(v.GetString("plant_ids"))
		if err != nil {
			return nil, err
		}
		cfg.PlantIDs = ids
	default:
		cfg.PlantIDs = v.GetIntSlice("plant_ids")
	}
	return cfg, nil
}

// parsePlantIDs splits a comma-separated plant ID list. Empty means
// discover all plants of the account at startup.
func parsePlantIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid plant ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
