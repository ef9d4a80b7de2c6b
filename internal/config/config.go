package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"PORT" env-default:"9300"`
	} `yaml:"listen"`
	Postgres struct {
		Host     string `yaml:"host" env:"PG_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"PG_PORT" env-default:"5432"`
		User     string `yaml:"user" env:"PG_USER" env-default:"postgres"`
		Password string `yaml:"password" env:"PG_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"PG_DATABASE" env-default:"crm"`
		SSLMode  string `yaml:"ssl_mode" env:"PG_SSL_MODE" env-default:"disable"`
	} `yaml:"postgres"`
	OpenAI struct {
		ApiKey     string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model      string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
		TimeoutSec int    `yaml:"timeout_sec" env:"OPENAI_TIMEOUT_SEC" env-default:"8"`
	} `yaml:"openai"`
	Webhook struct {
		Secret string `yaml:"secret" env:"WEBHOOK_SECRET" env-default:""`
	} `yaml:"webhook"`
	Auth struct {
		Secret        string `yaml:"secret" env:"AUTH_SECRET" env-default:""`
		TokenTTLHours int    `yaml:"token_ttl_hours" env:"AUTH_TOKEN_TTL_HOURS" env-default:"24"`
	} `yaml:"auth"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env:"TG_ENABLED" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TG_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env:"TG_ADMIN_ID" env-default:"0"`
		BotName string `yaml:"bot_name" env:"TG_BOT_NAME" env-default:"CrmAlertBot"`
	} `yaml:"telegram"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	} `yaml:"cors"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
