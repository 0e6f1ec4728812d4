package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	AccessSecret string
}

type PlatformConfig struct {
	PlatformFeePercent float64
	GSTPercent         float64
	ServiceCategories  []string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Platform    PlatformConfig
	SeedDemo    bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Platform: PlatformConfig{
			PlatformFeePercent: v.GetFloat64("PLATFORM_FEE_PERCENT"),
			GSTPercent:         v.GetFloat64("PLATFORM_GST_PERCENT"),
			ServiceCategories:  parseList(v.GetString("PLATFORM_SERVICE_CATEGORIES")),
		},
		SeedDemo: v.GetBool("SEED_DEMO_DATA"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Platform.PlatformFeePercent == 0 {
		cfg.Platform.PlatformFeePercent = 5
	}
	if cfg.Platform.GSTPercent == 0 {
		cfg.Platform.GSTPercent = 18
	}
	if len(cfg.Platform.ServiceCategories) == 0 {
		cfg.Platform.ServiceCategories = []string{
			"publication", "valuation", "claims", "forensic",
			"compliance", "litigation", "meetings",
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Platform.PlatformFeePercent < 0 || cfg.Platform.PlatformFeePercent > 100 {
		return fmt.Errorf("PLATFORM_FEE_PERCENT must be between 0 and 100")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
