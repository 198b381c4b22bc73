package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	SSO      SSOConfig
	Metrics  MetricsConfig
	Worker   WorkerConfig
	Minisite MinisiteConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// SSOConfig points at an external identity provider realm. When URL is
// empty, only locally issued HS256 tokens are accepted.
type SSOConfig struct {
	URL      string
	Realm    string
	ClientID string
}

type MetricsConfig struct {
	PushURL       string
	TenantHeader  string
	BatchSize     int
	FlushInterval time.Duration
}

type WorkerConfig struct {
	WorkerCount      int
	JobTimeout       time.Duration
	DomainCheckEvery time.Duration
	StatsWarmEvery   time.Duration
}

type MinisiteConfig struct {
	// Hostname tenants must point their custom domain at.
	PlatformHost string
	// Requests per second allowed per client IP on public routes.
	PublicRateLimit float64
	PublicRateBurst int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("STAYFLOW")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.migrationspath", "file://migrations")
	viper.SetDefault("auth.accesstokenttl", "24h")
	viper.SetDefault("auth.refreshtokenttl", "168h")
	viper.SetDefault("metrics.tenantheader", "X-Scope-OrgID")
	viper.SetDefault("metrics.batchsize", 1000)
	viper.SetDefault("metrics.flushinterval", "10s")
	viper.SetDefault("worker.workercount", 5)
	viper.SetDefault("worker.jobtimeout", "30s")
	viper.SetDefault("worker.domaincheckevery", "1h")
	viper.SetDefault("worker.statswarmevery", "10m")
	viper.SetDefault("minisite.platformhost", "sites.stayflow.app")
	viper.SetDefault("minisite.publicratelimit", 10)
	viper.SetDefault("minisite.publicrateburst", 30)

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if url := os.Getenv("METRICS_PUSH_URL"); url != "" {
		cfg.Metrics.PushURL = url
	}
	if url := os.Getenv("SSO_URL"); url != "" {
		cfg.SSO.URL = url
	}

	return &cfg, nil
}
