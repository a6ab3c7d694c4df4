package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
	} `yaml:"listen"`
	Auth struct {
		JwtSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:""`
	} `yaml:"auth"`
	Mongo struct {
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"asmidesk"`
	} `yaml:"mongo"`
	Whapi struct {
		BaseURL       string `yaml:"base_url" env:"WHAPI_BASE_URL" env-default:""`
		Token         string `yaml:"token" env:"WHAPI_TOKEN" env-default:""`
		WebhookSecret string `yaml:"webhook_secret" env:"WHAPI_WEBHOOK_SECRET" env-default:""`
		Admins        string `yaml:"admins" env:"WHAPI_ADMINS" env-default:""`
	} `yaml:"whapi"`
	Bot struct {
		CooldownMinutes int `yaml:"cooldown_minutes" env-default:"60"`
	} `yaml:"bot"`
	OpenAI struct {
		ApiKey string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model  string `yaml:"model" env-default:"gpt-3.5-turbo"`
	} `yaml:"openai"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"AsmiDeskBot"`
	} `yaml:"telegram"`
	Gmail struct {
		Enabled      bool   `yaml:"enabled" env-default:"false"`
		ClientID     string `yaml:"client_id" env-default:""`
		ClientSecret string `yaml:"client_secret" env-default:""`
		RefreshToken string `yaml:"refresh_token" env-default:""`
		From         string `yaml:"from" env-default:""`
	} `yaml:"gmail"`
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
