package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		Build        string
		LogFile      string
		RollbarToken string

		API      APIConfig
		Database DatabaseConfig
		Seed     SeedConfig
	}

	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	SeedConfig struct {
		CountryCode string // ISO 3166-1 alpha-2
		CountryName string // resolved from CountryCode when empty
		StatesURL   string
		CitiesURL   string
		Timeout     time.Duration
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

const datasetURL = "https://raw.githubusercontent.com/dr5hn/countries-states-cities-database/refs/heads/master/json/"

// NewConfig loads the configuration of the current ENV from the environment,
// after applying the optional config/.env.<env> file.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "AIM Forms")
	conf.SetDefault("build", "develop")
	conf.SetDefault("logFile", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("testMode", false)

	conf.SetDefault("api.baseURL", "http://localhost:3000")
	conf.SetDefault("api.timeout", 15*time.Second)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "aim")
	conf.SetDefault("database.user", "postgres")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("seed.countryCode", "IN")
	conf.SetDefault("seed.countryName", "")
	conf.SetDefault("seed.statesURL", datasetURL+"states.json")
	conf.SetDefault("seed.citiesURL", datasetURL+"cities.json")
	conf.SetDefault("seed.timeout", 5*time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	// DEV_API_BASEURL -> api.baseURL
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if root, err := Getwd(); err == nil {
		dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Build:        conf.GetString("build"),
		LogFile:      conf.GetString("logFile"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL: conf.GetString("api.baseURL"),
			Timeout: conf.GetDuration("api.timeout"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("database.engine"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
		Seed: SeedConfig{
			CountryCode: strings.ToUpper(conf.GetString("seed.countryCode")),
			CountryName: conf.GetString("seed.countryName"),
			StatesURL:   conf.GetString("seed.statesURL"),
			CitiesURL:   conf.GetString("seed.citiesURL"),
			Timeout:     conf.GetDuration("seed.timeout"),
		},
	}
}
