// Package config provides configuration management for the merchant agent.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
	"time"
)

// Config holds all configuration for the merchant agent.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug    bool  `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	LogRecords int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen     struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"ima"`
	} `yaml:"mongo"`
	Merchant struct {
		// MerchantHandler receives the server-to-server requests
		MerchantHandler string `yaml:"merchant_handler" env:"IMA_MERCHANT_HANDLER" env-default:""`
		// ClientHandler is where the cardholder browser is redirected to enter card data
		ClientHandler string `yaml:"client_handler" env:"IMA_CLIENT_HANDLER" env-default:""`
		CertPath      string `yaml:"cert_path" env:"IMA_CERT_PATH" env-default:""`
		KeyPath       string `yaml:"key_path" env:"IMA_KEY_PATH" env-default:""`
		Password      string `yaml:"password" env:"IMA_PASS" env-default:""`
		// CAPath defaults to CertPath when empty; only used with VerifyPeer
		CAPath     string `yaml:"ca_path" env:"IMA_CA_PATH" env-default:""`
		VerifyPeer bool   `yaml:"verify_peer" env:"IMA_VERIFY_PEER" env-default:"false"`
		// Currency is the ISO 4217 numeric code (3 digits), 840 = USD
		Currency string        `yaml:"currency" env:"IMA_CURRENCY" env-default:"840"`
		Language string        `yaml:"language" env:"IMA_LANGUAGE" env-default:""`
		Timeout  time.Duration `yaml:"timeout" env:"IMA_TIMEOUT" env-default:"30s"`
	} `yaml:"merchant"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = ReadConfig(path)
	})
	return instance, err
}

// ReadConfig reads a fresh configuration. An empty path reads environment variables only.
func ReadConfig(path string) (*Config, error) {
	conf := &Config{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}

// CAPath returns the trust root used when peer verification is on.
func (c *Config) CAPath() string {
	if c.Merchant.CAPath != "" {
		return c.Merchant.CAPath
	}
	return c.Merchant.CertPath
}
