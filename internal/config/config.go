package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default limits: reference deploy serves on 8080 and rejects uploads above
// 1 MiB before any processing.
const (
	DefaultPort           = 8080
	DefaultMaxUploadBytes = 1 << 20
	DefaultMaxInflight    = 4
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Model struct {
		Path         string `yaml:"path"`
		MetadataPath string `yaml:"metadataPath"`
		MaxInflight  int    `yaml:"maxInflight"`
	} `yaml:"model"`

	Limits struct {
		MaxUploadBytes   int64 `yaml:"maxUploadBytes"`
		RateCapacity     int   `yaml:"rateCapacity"`
		RateRefillPerSec int   `yaml:"rateRefillPerSec"`
	} `yaml:"limits"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | redis | memory
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Addr     string `yaml:"addr"` // redis only
		DB       int    `yaml:"db"`   // redis only
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Limits.MaxUploadBytes == 0 {
		c.Limits.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Model.MaxInflight == 0 {
		c.Model.MaxInflight = DefaultMaxInflight
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
