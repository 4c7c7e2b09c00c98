package config

import (
	"fmt"
	"time"
)

// Config is the application configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis_service"`
	Session  SessionConfig  `mapstructure:"session"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress returns the listen address.
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the sqlite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds the session store connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// GetAddress returns the redis address.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig holds session cookie and lifetime settings.
type SessionConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
	RememberDays  int    `mapstructure:"remember_days"`
}

// GetExpireDuration returns the default session lifetime.
func (s *SessionConfig) GetExpireDuration() time.Duration {
	return time.Duration(s.ExpireMinutes) * time.Minute
}

// GetRememberDuration returns the "remember me" session lifetime.
func (s *SessionConfig) GetRememberDuration() time.Duration {
	return time.Duration(s.RememberDays) * 24 * time.Hour
}

// StorageConfig holds the blob directories and the upload size cap.
type StorageConfig struct {
	ModelsDir   string `mapstructure:"models_dir"`
	DatasetsDir string `mapstructure:"datasets_dir"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

// GetMaxUploadBytes returns the upload cap in bytes.
func (s *StorageConfig) GetMaxUploadBytes() int64 {
	return s.MaxUploadMB * 1024 * 1024
}

// CORSConfig holds the cross-origin settings.
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}
