// Package config 提供应用程序配置管理
// 基于viper实现，支持配置文件、环境变量和默认值三层覆盖
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
// 聚合服务器、数据库、存储、邮件和日志等各模块配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Storage  StorageConfig  `mapstructure:"storage"`  // 文件存储配置
	Mail     MailConfig     `mapstructure:"mail"`     // 邮件配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int    `mapstructure:"port"`          // 监听端口
	Mode         string `mapstructure:"mode"`          // 运行模式 (debug, release)
	ReadTimeout  int    `mapstructure:"read_timeout"`  // 读取超时（秒）
	WriteTimeout int    `mapstructure:"write_timeout"` // 写入超时（秒）
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // 数据库驱动 (sqlite)
	DSN             string `mapstructure:"dsn"`               // 数据库连接字符串
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // 最大打开连接数
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（秒）
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	Path          string `mapstructure:"path"`            // 文件存储目录
	MaxUploadSize int64  `mapstructure:"max_upload_size"` // 单文件最大上传大小（字节）
	PublicBase    string `mapstructure:"public_base"`     // 文件对外访问路径前缀
}

// MailConfig 邮件配置
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`  // 是否启用邮件发送
	Host     string `mapstructure:"host"`     // SMTP服务器地址
	Port     int    `mapstructure:"port"`     // SMTP服务器端口
	Username string `mapstructure:"username"` // SMTP用户名
	Password string `mapstructure:"password"` // SMTP应用密码
	Owner    string `mapstructure:"owner"`    // 站点所有者通知邮箱
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`     // 日志级别
	Format   string `mapstructure:"format"`    // 日志格式 (json, text)
	Output   string `mapstructure:"output"`    // 输出方式 (console, file, both)
	FilePath string `mapstructure:"file_path"` // 日志文件路径
}

// Load 加载应用程序配置
// 查找顺序: 当前目录下的config.yaml -> 环境变量(FILEBOX_前缀) -> 默认值
// 返回值:
//   - *Config: 配置实例
//   - error: 加载错误
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FILEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件不存在时仅依赖环境变量和默认值
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置所有配置项的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)

	// 数据库默认配置
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "filebox.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	// 存储默认配置
	v.SetDefault("storage.path", "./uploads")
	v.SetDefault("storage.max_upload_size", 50*1024*1024) // 50MB
	v.SetDefault("storage.public_base", "/uploads")

	// 邮件默认配置
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.owner", "")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "both")
	v.SetDefault("log.file_path", "logs/app.log")
}
