package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Locale        string              `mapstructure:"locale"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Backup        BackupConfig        `mapstructure:"backup"`
	Email         EmailConfig         `mapstructure:"email"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, mysql
	Path   string `mapstructure:"path"`   // sqlite database file

	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type NotificationsConfig struct {
	CheckOnStart bool `mapstructure:"check_on_start"`
	DailyCheck   bool `mapstructure:"daily_check"`
}

type BackupConfig struct {
	Provider      string           `mapstructure:"provider"` // drive, oss; empty disables cloud upload
	LocalDir      string           `mapstructure:"local_dir"`
	AutoEnabled   bool             `mapstructure:"auto_enabled"`
	IntervalHours int              `mapstructure:"interval_hours"`
	EncryptionKey string           `mapstructure:"encryption_key"` // protects the stored OAuth tokens
	TokenFile     string           `mapstructure:"token_file"`
	Drive         DriveOAuthConfig `mapstructure:"drive"`
	OSS           OSSConfig        `mapstructure:"oss"`
}

type DriveOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	Prefix          string `mapstructure:"prefix"`
}

type EmailConfig struct {
	SMTPHost string   `mapstructure:"smtp_host"`
	SMTPPort int      `mapstructure:"smtp_port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	Digest   []string `mapstructure:"digest"` // recipients of the expiry digest; empty disables it
}

func Load(configPath string) (*Config, error) {
	// Prefer config.local.yaml when present (real keys, not committed to git)
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Locale == "" {
		cfg.Locale = "bg"
	}

	return &cfg, nil
}
