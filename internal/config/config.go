package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr         string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN        string        `env:"DATABASE_DSN" envDefault:""`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"secret"`
	DiscountTTL        time.Duration `env:"DISCOUNT_TTL" envDefault:"5m"`
	ReaperInterval     time.Duration `env:"REAPER_INTERVAL" envDefault:"60s"`
	CheckAmountTTL     time.Duration `env:"CHECK_AMOUNT_TTL" envDefault:"15m"`
	MaxDiscountPercent int           `env:"MAX_DISCOUNT_PERCENT" envDefault:"30"`
	CashbackPercent    int           `env:"CASHBACK_PERCENT" envDefault:"5"`
	AgentTimeout       time.Duration `env:"AGENT_TIMEOUT" envDefault:"3s"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
}

// ReconcileConfig модель настроек сверки скидок с кассовым терминалом 1С
type ReconcileConfig struct {
	// время жизни незавершённой скидки
	DiscountTTL time.Duration
	// период фоновой очистки просроченных скидок
	ReaperInterval time.Duration
	// время жизни суммы чека, опубликованной кассовым агентом
	CheckAmountTTL time.Duration
	// максимальная доля чека, оплачиваемая баллами (в процентах)
	MaxDiscountPercent int
	// доля покупки, начисляемая баллами (в процентах)
	CashbackPercent int
	// таймаут запросов к агенту 1С
	AgentTimeout time.Duration
}

// Config модель настроек сервиса
type Config struct {
	Server    ServerConfig
	Reconcile ReconcileConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server      = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel    = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN         = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret      = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		ttl         = pflag.DurationP("discount_ttl", "t", args.DiscountTTL, "Pending discount time to live.")
		reaper      = pflag.DurationP("reaper_interval", "r", args.ReaperInterval, "Expired discounts sweep interval.")
		checkTTL    = pflag.DurationP("check_ttl", "c", args.CheckAmountTTL, "Registered check amount time to live.")
		maxDiscount = pflag.IntP("max_discount", "m", args.MaxDiscountPercent, "Max part of a purchase payable by points, percent.")
		cashback    = pflag.IntP("cashback", "b", args.CashbackPercent, "Cashback percent of a purchase.")
		agent       = pflag.DurationP("agent_timeout", "g", args.AgentTimeout, "Timeout for requests to the 1C store agent.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
		},
		Reconcile: ReconcileConfig{
			DiscountTTL:        *ttl,
			ReaperInterval:     *reaper,
			CheckAmountTTL:     *checkTTL,
			MaxDiscountPercent: *maxDiscount,
			CashbackPercent:    *cashback,
			AgentTimeout:       *agent,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
		},
		Reconcile: ReconcileConfig{
			DiscountTTL:        5 * time.Minute,
			ReaperInterval:     time.Minute,
			CheckAmountTTL:     15 * time.Minute,
			MaxDiscountPercent: 30,
			CashbackPercent:    5,
			AgentTimeout:       3 * time.Second,
		},
	}
}
