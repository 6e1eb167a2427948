package config

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 是环境变量前缀，例如 TERMSRE_MIN_COLORS。
const EnvPrefix = "TERMSRE"

// Config 表示框架的运行时配置。
type Config struct {
	// 原始文件路径，仅用于调试；从环境变量加载时为空。
	Source string `yaml:"-" ignored:"true"`

	// 退格/删除字符超过该数量时给出提示。
	BackspaceThreshold int `yaml:"backspace_threshold" envconfig:"BACKSPACE_THRESHOLD" default:"10"`
	// 终端颜色数低于该值时给出告警。
	MinColors int `yaml:"min_colors" envconfig:"MIN_COLORS" default:"256"`
	// 是否并发执行 transcript 分类器，输出顺序不受影响。
	ParallelClassifiers bool `yaml:"parallel_classifiers" envconfig:"PARALLEL_CLASSIFIERS" default:"false"`

	Log LogConfig `yaml:"log"`
}

// LogConfig 保存日志相关配置。
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"warn"`
	Development bool   `yaml:"development" envconfig:"DEV" default:"false"`
}

// NewDefault 返回默认配置。
func NewDefault() *Config {
	return &Config{
		BackspaceThreshold: 10,
		MinColors:          256,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load 从环境变量加载配置，未设置的字段使用默认值。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile 先从环境变量加载，再用给定 YAML 文件中出现的字段覆盖。
func LoadFromFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查阈值是否合法。
func (c *Config) Validate() error {
	if c.BackspaceThreshold < 0 {
		return fmt.Errorf("backspace_threshold must be >= 0, got %d", c.BackspaceThreshold)
	}
	if c.MinColors < 0 {
		return fmt.Errorf("min_colors must be >= 0, got %d", c.MinColors)
	}
	return nil
}
