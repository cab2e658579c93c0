package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const EnvProduction = "production"

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Env            string        `yaml:"env" validate:"required,oneof=development production test"`
	Port           int           `yaml:"port" validate:"required,min=1,max=65535"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	JwtTTL         time.Duration `yaml:"jwt_ttl" validate:"required"` // hours
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LoginRateLimit float64       `yaml:"login_rate_limit" validate:"required,gt=0"` // login attempts per second per IP
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     Pg     `yaml:"pg" validate:"required"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL * time.Hour
}

func (s *Config) IsProduction() bool {
	return s.Public.Env == EnvProduction
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func mustValidate(configPath string, cfg interface{}) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic(fmt.Sprintf("invalid config %s: %s", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	publicPath := path.Join(configFolder, "public.yaml")
	var public Public
	mustLoadPath(publicPath, &public)
	mustValidate(publicPath, &public)

	privatePath := path.Join(configFolder, "private.yaml")
	var private Private
	mustLoadPath(privatePath, &private)
	mustValidate(privatePath, &private)

	return &Config{public, private}
}
