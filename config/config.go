package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"tandaxn"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"tandaxn"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置，引导进度记录和限流都存在这里
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"txn"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// 会话配置，pending invite 放在 cookie 会话里跨登录流程保留
	SessionSecret string `env:"SESSION_SECRET"`

	// 邀请链接配置
	// App 自定义 scheme 和注册的公网域名使用完全相同的路径语法
	InviteAppScheme   string `env:"INVITE_APP_SCHEME" envDefault:"tandaxn"`
	InviteWebOrigins  string `env:"INVITE_WEB_ORIGINS" envDefault:"https://tandaxn.com,https://www.tandaxn.com"`
	InviteShareOrigin string `env:"INVITE_SHARE_ORIGIN" envDefault:"https://tandaxn.com"`

	// 密码哈希盐值
	PasswordHashSalt string `env:"PASSWORD_HASH_SALT"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	SampleRatio    float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"` // 每秒请求数

	// 引导流程配置
	OnboardingRecordTTLDays int `env:"ONBOARDING_RECORD_TTL_DAYS" envDefault:"365"` // 持久化记录保留天数
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	// 生产环境密钥必填；开发和测试环境给可预测的占位值
	if Cfg.JWTSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required")
		}
		log.Printf("WARN: JWT_SECRET not set, using insecure development default")
		Cfg.JWTSecret = "dev-jwt-secret"
	}

	if Cfg.SessionSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("SESSION_SECRET is required (signs the pending-invite session cookie)")
		}
		log.Printf("WARN: SESSION_SECRET not set, using insecure development default")
		Cfg.SessionSecret = "dev-session-secret"
	}

	if Cfg.PasswordHashSalt == "" {
		if Cfg.IsProduction() {
			log.Fatal("PASSWORD_HASH_SALT is required")
		}
		log.Printf("WARN: PASSWORD_HASH_SALT not set, using insecure development default")
		Cfg.PasswordHashSalt = "dev-password-salt"
	}

	if Cfg.InviteAppScheme == "" {
		log.Fatal("INVITE_APP_SCHEME must not be empty")
	}

	if len(Cfg.InviteOrigins()) == 0 {
		log.Printf("WARN: INVITE_WEB_ORIGINS is empty, only app-scheme links will decode")
	}
}

// InviteOrigins 返回注册的公网邀请域名列表
func (c *Config) InviteOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.InviteWebOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
