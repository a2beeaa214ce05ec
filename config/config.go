// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Line   LineConfig   `mapstructure:"line"`
	App    AppConfig    `mapstructure:"app"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

type RedisConfig struct {
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"required"`
	Password string `json:"password"`
	DB       int    `json:"db"`

	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

type LineConfig struct {
	ChannelAccessToken string `mapstructure:"channel_access_token"`
	ChannelSecret      string `mapstructure:"channel_secret"`
	LiffIDAdmin        string `mapstructure:"liff_id_admin"`
	LiffIDMember       string `mapstructure:"liff_id_member"`
}

type AppConfig struct {
	// AdminSetupCode is the fixed secret that promotes a member to
	// admin when typed into the chat. No lockout is applied.
	AdminSetupCode string `mapstructure:"admin_setup_code"`
	// TargetGroupID is the chat group event announcements go to.
	TargetGroupID string `mapstructure:"target_group_id"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	// secrets come from the environment in deployment
	c.Line.ChannelAccessToken = GetEnv("LINE_CHANNEL_ACCESS_TOKEN", c.Line.ChannelAccessToken)
	c.Line.ChannelSecret = GetEnv("LINE_CHANNEL_SECRET", c.Line.ChannelSecret)
	c.App.AdminSetupCode = GetEnv("ADMIN_SETUP_CODE", c.App.AdminSetupCode)
	c.App.TargetGroupID = GetEnv("TARGET_GROUP_ID", c.App.TargetGroupID)

	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
