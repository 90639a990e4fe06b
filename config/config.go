package config

import (
	"fmt"
	"os"
	"path/filepath"

	"job_search_go/utils"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// 全局配置结构体
type GlobalConfig struct {
	Api      ApiConfig     `mapstructure:"api" yaml:"api"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Redis    RedisConfig   `mapstructure:"redis" yaml:"redis"`
	Storage  StorageConfig `mapstructure:"storage" yaml:"storage"`
	Auth     AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Watch    WatchConfig   `mapstructure:"watch" yaml:"watch"`
	UI       UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// Api 后端接口配置
type ApiConfig struct {
	BaseURL        string `mapstructure:"baseUrl" yaml:"baseUrl"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// Database 本地快照库配置（MySQL）
type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn" yaml:"dsn"`
	MaxIdleConns int    `mapstructure:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns" yaml:"maxOpenConns"`
}

// Redis 配置（storage.backend=redis 时使用）
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Storage 快照存储后端选择
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // mysql / redis / memory
}

// Auth 令牌刷新配置
type AuthConfig struct {
	RefreshCron string `mapstructure:"refreshCron" yaml:"refreshCron"` // 刷新检查周期
	RefreshAheadMinutes int `mapstructure:"refreshAheadMinutes" yaml:"refreshAheadMinutes"` // 过期前多少分钟刷新
}

// Watch 定时搜索配置
type WatchConfig struct {
	Enabled   bool     `mapstructure:"enabled" yaml:"enabled"`
	Cron      string   `mapstructure:"cron" yaml:"cron"` // 例如 "@every 6h"
	Keywords  []string `mapstructure:"keywords" yaml:"keywords"`
	Location  string   `mapstructure:"location" yaml:"location"`
	Platforms []string `mapstructure:"platforms" yaml:"platforms"`
}

// UI 界面相关配置
type UIConfig struct {
	NotificationSeconds int    `mapstructure:"notificationSeconds" yaml:"notificationSeconds"` // 通知自动消失时长
	DefaultTheme        string `mapstructure:"defaultTheme" yaml:"defaultTheme"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{
		Api: ApiConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			TimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			DSN:          "",
			MaxIdleConns: 10,
			MaxOpenConns: 100,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Auth: AuthConfig{
			RefreshCron:         "@every 5m",
			RefreshAheadMinutes: 10,
		},
		Watch: WatchConfig{
			Enabled: false,
			Cron:    "@every 6h",
		},
		UI: UIConfig{
			NotificationSeconds: 5,
			DefaultTheme:        "light",
		},
	}
}

// InitConfig 初始化配置
// 配置文件不存在时先写出一份默认配置，再交给 viper 读取
func InitConfig() (*GlobalConfig, error) {
	configDir := "./config"
	if root, err := utils.GetProjectRoot(); err == nil {
		configDir = filepath.Join(root, "config")
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if !utils.FileExists(configFile) {
		if err := WriteDefaultConfig(configFile); err != nil {
			return nil, fmt.Errorf("生成默认配置文件失败: %v", err)
		}
	}

	viper.SetConfigName("config") // 配置文件名称（不带扩展名）
	viper.SetConfigType("yaml")   // 配置文件类型
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("JOB_SEARCH")
	viper.AutomaticEnv()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	// 解析配置文件到结构体
	config := DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	return config, nil
}

// WriteDefaultConfig 将默认配置写出为 yaml 文件
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化默认配置失败: %v", err)
	}

	return os.WriteFile(path, data, 0o644)
}
