package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfidenceFloor 分类置信度下限，低于该值视为 unknown
	DefaultConfidenceFloor = 0.30
	DefaultCorpusPath      = "data/corpus.txt"
	DefaultPort            = 8080
	DefaultPollTimeout     = 30 * time.Second
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
}

// RedisConfig Redis 配置（仅用于分类统计，未启用时使用内存统计）
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Addr 返回 host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClassifierConfig 意图分类配置
type ClassifierConfig struct {
	CorpusPath      string  `yaml:"corpusPath"`
	ConfidenceFloor float64 `yaml:"confidenceFloor"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	Token       string        `yaml:"token"`
	APIBase     string        `yaml:"apiBase"`
	PollTimeout time.Duration `yaml:"pollTimeout"`
}

// CORSConfig 跨域配置，AllowedOrigins 为空时回显请求 Origin
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LoadConfig 加载配置文件，随后应用环境变量覆盖和默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回不依赖配置文件的默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// applyEnvOverrides 环境变量优先于配置文件
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INTENTBOT_TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("INTENTBOT_CORPUS_PATH"); v != "" {
		c.Classifier.CorpusPath = v
	}
	if v := os.Getenv("INTENTBOT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("INTENTBOT_REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Enabled = true
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("INTENTBOT_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Name == "" {
		c.Server.Name = "intentbot"
	}
	if c.Classifier.CorpusPath == "" {
		c.Classifier.CorpusPath = DefaultCorpusPath
	}
	if c.Classifier.ConfidenceFloor <= 0 || c.Classifier.ConfidenceFloor > 1 {
		c.Classifier.ConfidenceFloor = DefaultConfidenceFloor
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = "https://api.telegram.org"
	}
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = DefaultPollTimeout
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
