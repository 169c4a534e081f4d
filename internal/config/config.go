package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

var (
	// ErrLoad ошибка чтения или разбора файла конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid значения конфигурации противоречат друг другу
	ErrInvalid = errors.New("config: invalid configuration")
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Session   SessionConfig   `toml:"session"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Shop      ShopConfig      `toml:"shop"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Finalizer FinalizerConfig `toml:"finalizer"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type AppConfig struct {
	Name string `toml:"name"`
	Env  string `toml:"env"` // dev | prod
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

type SessionConfig struct {
	Backend       string `toml:"backend"`        // memory | redis
	TTL           int    `toml:"ttl"`            // минуты, 0 отключает истечение
	SweepInterval int    `toml:"sweep_interval"` // секунды
}

type TelegramConfig struct {
	Enabled       bool   `toml:"enabled"`
	Token         string `toml:"token"`
	Debug         bool   `toml:"debug"`
	UpdateTimeout int    `toml:"update_timeout"` // секунды
	Workers       int    `toml:"workers"`
}

type ScheduleConfig struct {
	WorkStart   int    `toml:"work_start"`
	WorkEnd     int    `toml:"work_end"`
	WeekendDays []int  `toml:"weekend_days"` // 0 = воскресенье, как в time.Weekday
	Timezone    string `toml:"timezone"`     // пусто = локальная зона процесса
}

type ShopConfig struct {
	Address string `toml:"address"`
	Phone   string `toml:"phone"`
	Email   string `toml:"email"`
}

type CatalogConfig struct {
	Services    []domain.ServiceItem `toml:"services"`
	CarMakes    []string             `toml:"car_makes"`
	YearsShown  int                  `toml:"years_shown"`
	MakesPerRow int                  `toml:"makes_per_row"`
	YearsPerRow int                  `toml:"years_per_row"`
}

type FinalizerConfig struct {
	Timeout int `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	PerMinute int `toml:"per_minute"` // 0 отключает ограничение
	Burst     int `toml:"burst"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает .env (если есть), подставляет переменные окружения в TOML и проверяет результат
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, ".env")
}

// LoadWithEnv как Load, но с явным путем к .env
func LoadWithEnv(path, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: Load - env file %s: %v", ErrLoad, envPath, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - read %s: %v", ErrLoad, path, err)
	}

	cfg := &Config{}
	if _, err := toml.Decode(os.ExpandEnv(string(data)), cfg); err != nil {
		return nil, fmt.Errorf("%w: Load - decode %s: %v", ErrLoad, path, err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv секреты из окружения имеют приоритет над файлом
func (c *Config) applyEnv() {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) setDefaults() {
	setDefault(&c.App.Name, "smc-booking-bot")
	setDefault(&c.App.Env, EnvProd)

	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 10)
	setDefaultInt(&c.Server.WriteTimeout, 10)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Host, "localhost")
	setDefaultInt(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 10)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Redis.Addr, "localhost:6379")

	setDefault(&c.Session.Backend, SessionBackendMemory)
	setDefaultInt(&c.Session.SweepInterval, 60)

	setDefaultInt(&c.Telegram.UpdateTimeout, 60)
	setDefaultInt(&c.Telegram.Workers, 16)

	if c.Schedule.WorkStart == 0 && c.Schedule.WorkEnd == 0 {
		c.Schedule.WorkStart, c.Schedule.WorkEnd = domain.DefaultWorkStart, domain.DefaultWorkEnd
	}
	if c.Schedule.WeekendDays == nil {
		c.Schedule.WeekendDays = []int{int(time.Sunday)}
	}

	def := domain.DefaultCatalog()
	if len(c.Catalog.Services) == 0 {
		c.Catalog.Services = def.Services
	}
	if len(c.Catalog.CarMakes) == 0 {
		c.Catalog.CarMakes = def.CarMakes
	}
	setDefaultInt(&c.Catalog.YearsShown, def.YearsShown)
	setDefaultInt(&c.Catalog.MakesPerRow, def.MakesPerRow)
	setDefaultInt(&c.Catalog.YearsPerRow, def.YearsPerRow)

	setDefaultInt(&c.Finalizer.Timeout, 5)
	setDefaultInt(&c.RateLimit.Burst, 5)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, c.App.Name)
}

// Validate проверяет значения, которые нельзя исправить дефолтами
func (c *Config) Validate() error {
	if c.App.Env != EnvDev && c.App.Env != EnvProd {
		return fmt.Errorf("%w: app.env must be %q or %q, got %q", ErrInvalid, EnvDev, EnvProd, c.App.Env)
	}

	s := c.Schedule
	if s.WorkStart < 0 || s.WorkEnd > 24 || s.WorkStart >= s.WorkEnd {
		return fmt.Errorf("%w: schedule work hours %d-%d", ErrInvalid, s.WorkStart, s.WorkEnd)
	}
	for _, d := range s.WeekendDays {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return fmt.Errorf("%w: schedule weekend day %d is not in 0..6", ErrInvalid, d)
		}
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule timezone %q: %v", ErrInvalid, s.Timezone, err)
	}

	if c.Session.Backend != SessionBackendMemory && c.Session.Backend != SessionBackendRedis {
		return fmt.Errorf("%w: session.backend must be %q or %q, got %q",
			ErrInvalid, SessionBackendMemory, SessionBackendRedis, c.Session.Backend)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("%w: session.ttl must not be negative", ErrInvalid)
	}

	if c.Telegram.Enabled && c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram is enabled but BOT_TOKEN is empty", ErrInvalid)
	}

	keys := make(map[string]struct{}, len(c.Catalog.Services))
	for _, svc := range c.Catalog.Services {
		if svc.Key == "" || svc.Name == "" {
			return fmt.Errorf("%w: catalog service needs key and name", ErrInvalid)
		}
		if _, dup := keys[svc.Key]; dup {
			return fmt.Errorf("%w: duplicate catalog service key %q", ErrInvalid, svc.Key)
		}
		keys[svc.Key] = struct{}{}
	}

	return nil
}

// IsDev включает строгую проверку сессий
func (c *Config) IsDev() bool {
	return c.App.Env == EnvDev
}

// WorkSchedule расписание в виде доменной модели
func (s ScheduleConfig) WorkSchedule() domain.WorkSchedule {
	days := make([]time.Weekday, 0, len(s.WeekendDays))
	for _, d := range s.WeekendDays {
		days = append(days, time.Weekday(d))
	}
	return domain.WorkSchedule{
		StartHour:   s.WorkStart,
		EndHour:     s.WorkEnd,
		WeekendDays: days,
	}
}

// Location зона, в которой пользователь вводит дату
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

func (c CatalogConfig) Catalog() domain.Catalog {
	return domain.Catalog{
		Services:    c.Services,
		CarMakes:    c.CarMakes,
		YearsShown:  c.YearsShown,
		MakesPerRow: c.MakesPerRow,
		YearsPerRow: c.YearsPerRow,
	}
}

func (c ShopConfig) ShopInfo() domain.ShopInfo {
	return domain.ShopInfo{Address: c.Address, Phone: c.Phone, Email: c.Email}
}

// SessionTTL время жизни незавершенной сессии
func (c SessionConfig) SessionTTL() time.Duration {
	return time.Duration(c.TTL) * time.Minute
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setDefaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
