package config

import (
	"encoding/json"
	"os"

	"github.com/dbrandt/homebot/pkg/logger"
)

type Config struct {
	Database  DatabaseConfig  `json:"database"`
	Telegram  TelegramConfig  `json:"telegram"`
	Logging   LoggingConfig   `json:"logging"`
	Reminders RemindersConfig `json:"reminders"`
	Wekan     WekanConfig     `json:"wekan"`
}

type DatabaseConfig struct {
	// Path selects a SQLite database file. When empty, the PostgreSQL
	// fields below are used instead.
	Path     string `json:"path"`
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

// RemindersConfig carries the reminder engine knobs. The anchor hours seed
// under-specified reminders ("remind me tomorrow to X" fires at the morning
// anchor), the poll interval drives the scheduler tick, and the default
// recipient receives reminders that predate per-owner routing.
type RemindersConfig struct {
	MorningHour      int   `json:"morning_hour"`
	EveningHour      int   `json:"evening_hour"`
	PollSeconds      int   `json:"poll_seconds"`
	DefaultRecipient int64 `json:"default_recipient"`
}

type WekanConfig struct {
	URL         string      `json:"url"`
	Board       string      `json:"board"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	DefaultList string      `json:"default_list"`
	DefaultLane string      `json:"default_lane"`
	Users       []WekanUser `json:"users"`
}

type WekanUser struct {
	TelegramID int64  `json:"telegram_id"`
	WekanID    string `json:"wekan_id"`
	Name       string `json:"name"`
}

var AppConfig Config

func LoadConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	AppConfig.Reminders = AppConfig.Reminders.withDefaults()
	return nil
}

func (c RemindersConfig) withDefaults() RemindersConfig {
	if c.MorningHour <= 0 || c.MorningHour > 23 {
		c.MorningHour = 6
	}
	if c.EveningHour <= 0 || c.EveningHour > 23 {
		c.EveningHour = 19
	}
	if c.PollSeconds <= 0 {
		c.PollSeconds = 60
	}
	return c
}

// DefaultReminders returns the reminder engine defaults without a config
// file, mainly for tests.
func DefaultReminders() RemindersConfig {
	return RemindersConfig{}.withDefaults()
}
