package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig            `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig          `mapstructure:"postgres"`  // PostgreSQL配置
	Sync      SyncConfig              `mapstructure:"sync"`      // 同步调度配置
	Sources   map[string]SourceConfig `mapstructure:"sources"`   // 各上游源独立配置
	Simulator SimulatorConfig         `mapstructure:"simulator"` // 内置模拟源配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 同步调度配置
type SyncConfig struct {
	IntervalMs     int      `mapstructure:"interval_ms"`     // 轮询间隔（毫秒），默认5000
	EnabledSources []string `mapstructure:"enabled_sources"` // 启用的源列表
}

// Interval 轮询间隔（非法值回落到默认5秒）
func (s *SyncConfig) Interval() time.Duration {
	if s.IntervalMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// SourceConfig 单个上游源的独立配置
type SourceConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // API基础地址
	Path       string `mapstructure:"path"`        // 比赛列表接口路径
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 拉取重试次数
	Proxy      string `mapstructure:"proxy"`       // 代理地址
}

// SimulatorConfig 内置模拟源配置（开发/联调用）
type SimulatorConfig struct {
	Enabled    bool `mapstructure:"enabled"`     // 是否在本进程挂载 /sim 模拟接口
	MatchCount int  `mapstructure:"match_count"` // 每个源模拟的比赛数量
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	return &cfg, nil
}
