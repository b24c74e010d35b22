package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "KANBAN"
	DefaultConfigFile = "config.yml"

	RepositoryFile     = "file"
	RepositoryInMemory = "inmemory"
	RepositoryPostgres = "postgres"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Client     ClientConfig     `mapstructure:"client"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "file", "inmemory" или "postgres"
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int32         `mapstructure:"max_connections"`
	MinConnections int32         `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RPM int `mapstructure:"rpm"`
}

type WorkerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Quiet   bool          `mapstructure:"quiet"`
}

// flagKeys связывает флаги командной строки с ключами конфига
var flagKeys = map[string]string{
	"host":         "server.host",
	"port":         "server.port",
	"repository":   "repository.type",
	"data-path":    "repository.path",
	"database-url": "database.url",
	"development":  "logging.development",
	"api":          "client.base_url",
	"timeout":      "client.timeout",
	"quiet":        "client.quiet",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("repository.type", RepositoryFile)
	v.SetDefault("repository.path", "data/tasks.json")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)

	v.SetDefault("logging.development", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.rpm", 100)
	v.SetDefault("worker.interval", time.Minute)

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("client.quiet", false)
}

// RegisterServerFlags - флаги kanban-api
func RegisterServerFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultConfigFile, "путь к config.yml")
	fs.String("host", "", "адрес для прослушивания")
	fs.Int("port", 8080, "порт HTTP сервера")
	fs.String("repository", RepositoryFile, "хранилище: file, inmemory или postgres")
	fs.String("data-path", "data/tasks.json", "путь к JSON файлу задач")
	fs.String("database-url", "", "строка подключения к PostgreSQL")
	fs.Bool("development", false, "логи в режиме разработки")
}

// Load читает конфиг сервера: значения по умолчанию, config.yml,
// переменные KANBAN_*, флаги. Каждый следующий источник важнее.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("kanban-api", pflag.ContinueOnError)
	RegisterServerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("разбор флагов: %w", err)
	}
	return FromFlags(fs)
}

// FromFlags собирает конфиг из уже разобранного набора флагов.
// Учитываются только явно заданные флаги из flagKeys.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configFile := DefaultConfigFile
	explicit := false
	if f := fs.Lookup("config"); f != nil {
		configFile = f.Value.String()
		explicit = f.Changed
	}
	if err := readFile(v, configFile, explicit); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("привязка флага %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readFile: отсутствие файла по умолчанию не ошибка, явно указанного - ошибка
func readFile(v *viper.Viper, path string, explicit bool) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не могу прочитать %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositoryFile:
		if c.Repository.Path == "" {
			return errors.New("repository.path не может быть пустым")
		}
	case RepositoryInMemory:
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return errors.New("для repository.type=postgres нужен database.url")
		}
	default:
		return fmt.Errorf("неизвестный repository.type %q", c.Repository.Type)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("неверный server.port %d", c.Server.Port)
	}
	if c.Worker.Interval < 0 {
		return errors.New("worker.interval не может быть отрицательным")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
