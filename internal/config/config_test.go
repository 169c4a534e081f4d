package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "")

	cfg, err := LoadWithEnv(path, "")
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.App.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "smc-booking-bot", cfg.Metrics.ServiceName)
	assert.Equal(t, 5, cfg.Finalizer.Timeout)

	assert.Equal(t, domain.DefaultWorkSchedule(), cfg.Schedule.WorkSchedule())
	assert.Equal(t, domain.DefaultCatalog(), cfg.Catalog.Catalog())

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileEnvAndSecrets(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "SMC_TEST_DB_HOST=db.internal\nBOT_TOKEN=from-dotenv\n")
	path := writeFile(t, dir, "config.toml", `
[app]
env = "dev"

[database]
host = "${SMC_TEST_DB_HOST}"
port = 6432
user = "bot"
dbname = "booking"

[session]
backend = "redis"
ttl = 30

[telegram]
enabled = true

[schedule]
work_start = 8
work_end = 18
weekend_days = [0, 6]
timezone = "UTC"

[shop]
address = "ул. Кенесары 45/2, Астана"
phone = "+7 707 222 80 80"

[[catalog.services]]
key = "oil"
name = "Замена масла"
`)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))
	t.Cleanup(func() { _ = os.Unsetenv("SMC_TEST_DB_HOST") })

	cfg, err := LoadWithEnv(path, envPath)
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "from-dotenv", cfg.Telegram.Token)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal port=6432 user=bot password=secret dbname=booking")
	assert.Equal(t, 30*time.Minute, cfg.Session.SessionTTL())

	schedule := cfg.Schedule.WorkSchedule()
	assert.Equal(t, 8, schedule.StartHour)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, schedule.WeekendDays)

	catalog := cfg.Catalog.Catalog()
	require.Len(t, catalog.Services, 1)
	assert.Equal(t, "oil", catalog.Services[0].Key)
	assert.Equal(t, domain.DefaultCatalog().CarMakes, catalog.CarMakes)

	assert.Equal(t, "+7 707 222 80 80", cfg.Shop.ShopInfo().Phone)
}

func TestLoad_NoWeekend(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[schedule]\nweekend_days = []\n")

	cfg, err := LoadWithEnv(path, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Schedule.WorkSchedule().WeekendDays)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "")

	_, err := LoadWithEnv(path, filepath.Join(dir, "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.toml"), "")
	assert.ErrorIs(t, err, ErrLoad)

	path := writeFile(t, t.TempDir(), "config.toml", "[app\n")
	_, err = LoadWithEnv(path, "")
	assert.ErrorIs(t, err, ErrLoad)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad env", content: "[app]\nenv = \"staging\""},
		{name: "hours reversed", content: "[schedule]\nwork_start = 20\nwork_end = 9"},
		{name: "weekday out of range", content: "[schedule]\nweekend_days = [7]"},
		{name: "bad timezone", content: "[schedule]\ntimezone = \"Mars/Olympus\""},
		{name: "bad backend", content: "[session]\nbackend = \"memcached\""},
		{name: "negative ttl", content: "[session]\nttl = -1"},
		{name: "telegram without token", content: "[telegram]\nenabled = true\ntoken = \"\""},
		{name: "duplicate service", content: "[[catalog.services]]\nkey = \"a\"\nname = \"A\"\n[[catalog.services]]\nkey = \"a\"\nname = \"B\""},
	}

	t.Setenv("BOT_TOKEN", "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			_, err := LoadWithEnv(path, "")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
