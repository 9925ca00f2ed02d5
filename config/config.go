package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"travelpro/services"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Amadeus   AmadeusConfig   `yaml:"amadeus"`
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Debug     bool            `yaml:"debug"`
}

type HTTPConfig struct {
	Port         string   `yaml:"port"`
	GinMode      string   `yaml:"gin_mode"`
	FrontendURLs []string `yaml:"frontend_urls"`
}

type AmadeusConfig struct {
	ClientID             string `yaml:"client_id"`
	ClientSecret         string `yaml:"client_secret"`
	Env                  string `yaml:"env"`
	TokenTimeoutSeconds  int    `yaml:"token_timeout_seconds"`
	SearchTimeoutSeconds int    `yaml:"search_timeout_seconds"`
}

// BaseURL picks the production host only when Env says so.
func (a AmadeusConfig) BaseURL() string {
	if strings.EqualFold(a.Env, "production") {
		return services.AmadeusProductionURL
	}
	return services.AmadeusTestURL
}

func (a AmadeusConfig) Client() services.AmadeusConfig {
	return services.AmadeusConfig{
		ClientID:      a.ClientID,
		ClientSecret:  a.ClientSecret,
		BaseURL:       a.BaseURL(),
		TokenTimeout:  seconds(a.TokenTimeoutSeconds),
		SearchTimeout: seconds(a.SearchTimeoutSeconds),
	}
}

type WikipediaConfig struct {
	BaseURL        string `yaml:"base_url"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GeocodingConfig struct {
	BaseURL        string `yaml:"base_url"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:         "8080",
			FrontendURLs: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Amadeus: AmadeusConfig{
			Env:                  "test",
			TokenTimeoutSeconds:  10,
			SearchTimeoutSeconds: 15,
		},
		Wikipedia: WikipediaConfig{
			BaseURL:        "https://%s.wikipedia.org",
			Language:       "es",
			TimeoutSeconds: 10,
		},
		Geocoding: GeocodingConfig{
			BaseURL:        "https://geocoding-api.open-meteo.com",
			Language:       "es",
			TimeoutSeconds: 10,
		},
	}
}

// Load reads .env, then the optional YAML file at path, then lets the
// environment override whatever the file set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.HTTP.GinMode = v
	}
	// FRONTEND_URL replaces the localhost defaults rather than extending them.
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		var origins []string
		for _, u := range strings.Split(v, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				origins = append(origins, u)
			}
		}
		if len(origins) > 0 {
			cfg.HTTP.FrontendURLs = origins
		}
	}

	if v := firstEnv("AMADEUS_CLIENT_ID", "AMADEUS_API_KEY"); v != "" {
		cfg.Amadeus.ClientID = v
	}
	if v := firstEnv("AMADEUS_CLIENT_SECRET", "AMADEUS_API_SECRET"); v != "" {
		cfg.Amadeus.ClientSecret = v
	}
	if v := os.Getenv("AMADEUS_ENV"); v != "" {
		cfg.Amadeus.Env = v
	}

	if v := os.Getenv("WIKI_LANGUAGE"); v != "" {
		cfg.Wikipedia.Language = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		} else {
			log.Printf("⚠️  Ignoring DEBUG=%q: %v", v, err)
		}
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
