package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"MedPetAlertBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	WhatsApp struct {
		AccessToken   string `yaml:"access_token" env:"WA_ACCESS_TOKEN" env-default:""`
		VerifyToken   string `yaml:"verify_token" env:"WA_VERIFY_TOKEN" env-default:"" validate:"required"`
		AppSecret     string `yaml:"app_secret" env:"WA_APP_SECRET" env-default:""`
		PhoneNumberID string `yaml:"phone_number_id" env:"WA_PHONE_NUMBER_ID" env-default:"" validate:"required"`
	} `yaml:"whatsapp"`
	OpenAI struct {
		ApiKey     string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model      string `yaml:"model" env-default:"gpt-4o"`
		RolePrompt string `yaml:"role_prompt" env-default:"You are a helpful veterinary assistant for the MedPet online clinic. Answer briefly and always recommend visiting the clinic for anything serious."`
	} `yaml:"openai"`
	Mongo struct {
		Enabled     bool   `yaml:"enabled" env-default:"false"`
		Host        string `yaml:"host" env-default:"127.0.0.1"`
		Port        string `yaml:"port" env-default:"27017"`
		User        string `yaml:"user" env-default:"admin"`
		Password    string `yaml:"password" env-default:"pass"`
		Database    string `yaml:"database" env-default:"medpet"`
		ExpiredDays int    `yaml:"expired_days" env-default:"7"`
	} `yaml:"mongo"`
	Sheets struct {
		Enabled         bool   `yaml:"enabled" env-default:"false"`
		SpreadsheetID   string `yaml:"spreadsheet_id" env:"SPREAD_SHEET_ID" env-default:""`
		CredentialsFile string `yaml:"credentials_file" env-default:"credentials.json"`
		Range           string `yaml:"range" env-default:"reservas"`
	} `yaml:"sheets"`
	Bot struct {
		Language       string `yaml:"language" env-default:"en" validate:"oneof=en es"`
		BusinessName   string `yaml:"business_name" env-default:"MedPet"`
		MaxInputChars  int    `yaml:"max_input_chars" env-default:"100" validate:"min=1"`
		DedupWindowSec int    `yaml:"dedup_window_sec" env-default:"300" validate:"min=1"`
		AskTimeoutSec  int    `yaml:"ask_timeout_sec" env-default:"30" validate:"min=1"`
	} `yaml:"bot"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"3000"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
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
		if err = validator.New().Struct(instance); err != nil {
			instance = nil
			log.Fatal(fmt.Errorf("config validation: %w", err))
		}
	})
	return instance
}
