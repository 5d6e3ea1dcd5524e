package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Cron       CronConfig       `mapstructure:"cron"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Retention  RetentionConfig  `mapstructure:"retention"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr  string `mapstructure:"http_addr"`
	AuthToken string `mapstructure:"auth_token"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	RetentionSweep string `mapstructure:"retention_sweep"`
}

// SimulationConfig bounds incoming projection requests.
type SimulationConfig struct {
	MaxOpportunitiesPerPeriod int           `mapstructure:"max_opportunities_per_period"`
	MaxPeriodsPerCycle        int           `mapstructure:"max_periods_per_cycle"`
	MaxCycles                 int           `mapstructure:"max_cycles"`
	MaxRecords                int           `mapstructure:"max_records"`
	StatsRefreshInterval      time.Duration `mapstructure:"stats_refresh_interval"`
}

type RetentionConfig struct {
	RunMaxAge   time.Duration `mapstructure:"run_max_age"`
	AuditMaxAge time.Duration `mapstructure:"audit_max_age"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.auth_token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.retention_sweep", "@every 1h")
	v.SetDefault("simulation.max_opportunities_per_period", 100)
	v.SetDefault("simulation.max_periods_per_cycle", 200)
	v.SetDefault("simulation.max_cycles", 50)
	v.SetDefault("simulation.max_records", 10000)
	v.SetDefault("simulation.stats_refresh_interval", "5m")
	v.SetDefault("retention.run_max_age", "720h")
	v.SetDefault("retention.audit_max_age", "2160h")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
