package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
	Upload        UploadConfig        `mapstructure:"upload"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | memory
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	StatsTTL int    `mapstructure:"stats_ttl"` // 秒，点赞和订阅变化不会主动失效缓存
}

// MaxStatsTTL 频道统计允许的最长缓存时间
const MaxStatsTTL = 5 * time.Minute

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StatsTTLDuration 频道统计缓存时间，超过 MaxStatsTTL 时截断
func (r *RedisConfig) StatsTTLDuration() time.Duration {
	if r.StatsTTL <= 0 {
		return 30 * time.Second
	}
	ttl := time.Duration(r.StatsTTL) * time.Second
	if ttl > MaxStatsTTL {
		return MaxStatsTTL
	}
	return ttl
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	VideoBucket     string `mapstructure:"video_bucket"`
	ThumbnailBucket string `mapstructure:"thumbnail_bucket"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// Topic 按名称取 topic，缺省时返回 fallback
func (k *KafkaConfig) Topic(name, fallback string) string {
	if t, ok := k.Topics[name]; ok && t != "" {
		return t
	}
	return fallback
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Hosts   []string          `mapstructure:"hosts"`
	Index   map[string]string `mapstructure:"index"`
}

// VideosIndex 视频索引名
func (e *ElasticsearchConfig) VideosIndex() string {
	if name := e.Index["videos"]; name != "" {
		return name
	}
	return "videos"
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration 返回过期时间
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// UploadConfig 上传配置
type UploadConfig struct {
	TempDir        string `mapstructure:"temp_dir"`
	MaxVideoSizeMB int64  `mapstructure:"max_video_size_mb"`
	MaxImageSizeMB int64  `mapstructure:"max_image_size_mb"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vidtube-go")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.stats_ttl", 30)
	v.SetDefault("minio.video_bucket", "videos")
	v.SetDefault("minio.thumbnail_bucket", "thumbnails")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("upload.temp_dir", "/tmp/vidtube-upload")
	v.SetDefault("upload.max_video_size_mb", 500)
	v.SetDefault("upload.max_image_size_mb", 10)
}

// Load 加载配置文件，环境变量（VIDTUBE_ 前缀）优先
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("VIDTUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
