package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: /tmp/test.db
inventory:
  rack_requires_book: true
scanner:
  poll_interval: 50ms
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.Inventory.RackRequiresBook)
	assert.Equal(t, 50*time.Millisecond, cfg.Scanner.PollInterval)

	// 默认值
	assert.Equal(t, "library.inventory", cfg.MQ.Exchange)
	assert.Equal(t, "topic", cfg.MQ.ExchangeType)
	assert.Equal(t, 10*time.Minute, cfg.Redis.BookTTL)
	assert.Equal(t, uint32(5), cfg.Redis.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Redis.BreakerTimeout)
	assert.Equal(t, 10*time.Second, cfg.Scanner.DefaultTimeout)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("LIBRARY_DATABASE_PASSWORD", "s3cret")
	t.Setenv("LIBRARY_SERVER_PORT", "7070")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"非法端口", "server:\n  port: 70000\n"},
		{"未知驱动", "database:\n  driver: oracle\n"},
		{"超时配置冲突", "scanner:\n  default_timeout: 2m\n  max_timeout: 1m\n"},
		{"扫码超时超过写超时", "server:\n  write_timeout: 10s\nscanner:\n  default_timeout: 5s\n  max_timeout: 20s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "library",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
