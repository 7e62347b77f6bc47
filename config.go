package hotresque

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/redis/go-redis/v9"
)

// Config is the file form of the connection and queue settings.
//
//	addr: localhost:6379
//	db: 0
//	namespace: resque
//	serializer: json
type Config struct {
	Addr       string `yaml:"addr"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	Namespace  string `yaml:"namespace"`
	Serializer string `yaml:"serializer"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hotresque: read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("hotresque: parse config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	return &cfg, nil
}

func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.Addr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
	}
}

// Options converts the queue settings. An unknown serializer name fails.
func (c *Config) Options() ([]Option, error) {
	ser, err := SerializerByName(c.Serializer)
	if err != nil {
		return nil, err
	}
	return []Option{WithNamespace(c.Namespace), WithSerializer(ser)}, nil
}

// OpenConfig dials a queue named name using cfg. Extra options apply last.
func OpenConfig(cfg *Config, name string, opts ...Option) (*Queue, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return Dial(name, cfg.RedisOptions(), append(base, opts...)...)
}
