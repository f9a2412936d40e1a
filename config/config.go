package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BodyLimit    int64      `mapstructure:"body_limit"` // 请求体上限（字节）
	CORS         CORSConfig `mapstructure:"cors"`
	GenerateRate RateConfig `mapstructure:"generate_rate"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateConfig 滑动窗口限流配置
type RateConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlannerConfig 课表生成配置
type PlannerConfig struct {
	DefaultMinCredits int `mapstructure:"default_min_credits"`
	DefaultMaxCredits int `mapstructure:"default_max_credits"`
	// MaxCourses 单次生成允许参与枚举的课程数上限（指数复杂度保护），0 表示不限
	MaxCourses int `mapstructure:"max_courses"`
	// Workers 按子集大小并行枚举的协程数
	Workers int `mapstructure:"workers"`
	// GenerateTimeout 单次生成的最长耗时
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
	// 周视图导出的时间范围（整点）
	CalendarStartHour int `mapstructure:"calendar_start_hour"`
	CalendarEndHour   int `mapstructure:"calendar_end_hour"`
	// ICSWeekStart iCalendar 导出时首个上课周的周一，格式 2006-01-02
	ICSWeekStart string `mapstructure:"ics_week_start"`
	ICSTimezone  string `mapstructure:"ics_timezone"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("SCHEDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.generate_rate.limit", 10)
	v.SetDefault("server.generate_rate.window", "1m")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "schedule_gen")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "") // 注册键名，仅设环境变量时 Unmarshal 才能读到
	v.SetDefault("auth.access_token_ttl", "2h")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("planner.default_min_credits", 0)
	v.SetDefault("planner.default_max_credits", 18)
	v.SetDefault("planner.max_courses", 20)
	v.SetDefault("planner.workers", 1)
	v.SetDefault("planner.generate_timeout", "10s")
	v.SetDefault("planner.calendar_start_hour", 8)
	v.SetDefault("planner.calendar_end_hour", 20)
	v.SetDefault("planner.ics_week_start", "2026-01-05")
	v.SetDefault("planner.ics_timezone", "UTC")
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	return c.Planner.Validate()
}

// Validate 校验课表生成配置，供服务端与命令行共用
func (p *PlannerConfig) Validate() error {
	if p.DefaultMaxCredits < 0 {
		return fmt.Errorf("配置校验失败: planner.default_max_credits 不能为负数")
	}
	if p.DefaultMinCredits < 0 {
		return fmt.Errorf("配置校验失败: planner.default_min_credits 不能为负数")
	}
	if p.MaxCourses < 0 {
		return fmt.Errorf("配置校验失败: planner.max_courses 不能为负数")
	}
	if p.CalendarStartHour < 0 || p.CalendarEndHour > 24 || p.CalendarStartHour >= p.CalendarEndHour {
		return fmt.Errorf("配置校验失败: planner.calendar_start_hour/calendar_end_hour 范围无效")
	}
	if _, err := time.Parse("2006-01-02", p.ICSWeekStart); err != nil {
		return fmt.Errorf("配置校验失败: planner.ics_week_start 格式应为 2006-01-02: %w", err)
	}
	if _, err := time.LoadLocation(p.ICSTimezone); err != nil {
		return fmt.Errorf("配置校验失败: planner.ics_timezone 无效: %w", err)
	}
	return nil
}

// DefaultPlanner 返回与 Load 默认值一致的课表生成配置（命令行离线使用）
func DefaultPlanner() PlannerConfig {
	return PlannerConfig{
		DefaultMinCredits: 0,
		DefaultMaxCredits: 18,
		MaxCourses:        20,
		Workers:           1,
		GenerateTimeout:   10 * time.Second,
		CalendarStartHour: 8,
		CalendarEndHour:   20,
		ICSWeekStart:      "2026-01-05",
		ICSTimezone:       "UTC",
	}
}
