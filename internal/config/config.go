package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Admin    AdminConfig    `yaml:"admin"`
	Upload   UploadConfig   `yaml:"upload"`
	Display  DisplayConfig  `yaml:"display"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects between the embedded sqlite file and a hosted MySQL
// instance. Driver is "sqlite" or "mysql".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// AuthConfig carries the birthday allow-list and the token-to-name mapping.
// The tokens are the credentials themselves and are matched exactly, never
// hashed.
type AuthConfig struct {
	AllowedBirthdays []string          `yaml:"allowed_birthdays"`
	DisplayNames     map[string]string `yaml:"display_names"`
	DefaultName      string            `yaml:"default_name"`
}

type AdminConfig struct {
	// SecretHash is a bcrypt hash of the admin key. When empty, Secret is
	// hashed at startup instead.
	SecretHash string `yaml:"secret_hash"`
	Secret     string `yaml:"secret"`
	JWTSecret  string `yaml:"jwt_secret"`
}

type UploadConfig struct {
	Dir string `yaml:"dir"`
}

type DisplayConfig struct {
	Timezone         string `yaml:"timezone"`
	GreetingFallback string `yaml:"greeting_fallback"`
	PSFallback       string `yaml:"ps_fallback"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 5000},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "sqlite", Path: "birthday-home.db", Port: 3306, Name: "birthday_home"},
		Auth: AuthConfig{
			AllowedBirthdays: []string{"030605", "ry5678"},
			DisplayNames:     map[string]string{"ry5678": "ry"},
			DefaultName:      "user",
		},
		Admin: AdminConfig{
			Secret:    "secret-5678",
			JWTSecret: "birthday-home-secret-2026",
		},
		Upload: UploadConfig{Dir: "uploads"},
		Display: DisplayConfig{
			Timezone:         "Asia/Kuala_Lumpur",
			GreetingFallback: "Welcome back.",
			PSFallback:       "Take care of yourself today.",
		},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/birthday-home/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Admin.Secret, "ADMIN_SECRET")
	envOverride(&c.Admin.SecretHash, "ADMIN_SECRET_HASH")
	envOverride(&c.Admin.JWTSecret, "ADMIN_JWT_SECRET")
	envOverride(&c.Upload.Dir, "UPLOAD_DIR")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")
	if v := os.Getenv("ALLOWED_BIRTHDAYS"); v != "" {
		c.Auth.AllowedBirthdays = strings.Split(v, ",")
	}

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// bottle-view draws rely on telling a duplicate key apart from
		// other failures
		TranslateError: true,
	}

	switch c.Database.Driver {
	case "", "sqlite":
		return gorm.Open(sqlite.Open(c.Database.Path), gormCfg)
	case "mysql":
		cfg := gomysql.NewConfig()
		cfg.User = c.Database.User
		cfg.Passwd = c.Database.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
		cfg.DBName = c.Database.Name
		cfg.ParseTime = true

		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB := sql.OpenDB(connector)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gormCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
