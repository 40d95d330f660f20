package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads .env, then config.yaml from paths (default "."), then the
// environment. Later sources win.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	for _, p := range paths {
		if loadErr := godotenv.Load(strings.TrimSuffix(p, "/") + "/.env"); loadErr == nil {
			break
		}
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if readErr := v.ReadInConfig(); readErr != nil {
		log.Printf("note: config.yaml not found, reading environment only: %v", readErr)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("kafka.group_id", "file-processor-group")
	v.SetDefault("auth.token_lifespan", 7*24*time.Hour)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"app.port":              "APP_PORT",
		"app.env":               "APP_ENV",
		"db.dsn":                "DB_DSN",
		"redis.addr":            "REDIS_ADDR",
		"redis.password":        "REDIS_PASSWORD",
		"redis.cache_ttl":       "REDIS_CACHE_TTL",
		"kafka.brokers":         "KAFKA_BROKERS",
		"kafka.group_id":        "KAFKA_GROUP_ID",
		"auth.jwt_secret":       "JWT_SECRET",
		"auth.token_lifespan":   "TOKEN_LIFESPAN",
		"cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
		"cloudinary.api_key":    "CLOUDINARY_API_KEY",
		"cloudinary.api_secret": "CLOUDINARY_API_SECRET",
		"tracing.otlp_endpoint": "OTLP_ENDPOINT",
	}
	for key, env := range bindings {
		if err = v.BindEnv(key, env); err != nil {
			return cfg, err
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	// KAFKA_BROKERS arrives as one comma separated string.
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.TokenLifespan <= 0 {
		errs = append(errs, errors.New("auth.token_lifespan must be positive"))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db.dsn is required"))
	}
	return errors.Join(errs...)
}
