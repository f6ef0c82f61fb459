package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig selects and parametrizes the durable key-value backend.
type StorageConfig struct {
	Type       string `json:"type" mapstructure:"type"` // "file" or "sqlite"
	Dir        string `json:"dir" mapstructure:"dir"`
	SqlitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// UIConfig holds presentation-policy settings the core consults.
type UIConfig struct {
	// SingleShotMarker exits marker-placement mode when the add-marker
	// dialog closes, success or cancel. When false the mode stays active
	// for repeated placements until toggled off explicitly.
	SingleShotMarker bool `json:"singleShotMarker" mapstructure:"singleShotMarker"`
}

// Load reads configuration from the JSON config file and sets default
// values. configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.dir", "./data")
	viper.SetDefault("storage.sqlitePath", "./data/waymark.db")

	viper.SetDefault("notify.dismissAfterMs", 5000)

	viper.SetDefault("ui.singleShotMarker", true)

	viper.SetConfigName("waymark.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:       viper.GetString("storage.type"),
		Dir:        viper.GetString("storage.dir"),
		SqlitePath: viper.GetString("storage.sqlitePath"),
	}
}

// GetUIConfig returns the presentation-policy settings.
func GetUIConfig() UIConfig {
	return UIConfig{
		SingleShotMarker: viper.GetBool("ui.singleShotMarker"),
	}
}

// GetNotifyDismissAfter returns the auto-dismiss delay for transient
// notifications.
func GetNotifyDismissAfter() time.Duration {
	return time.Duration(viper.GetInt("notify.dismissAfterMs")) * time.Millisecond
}
