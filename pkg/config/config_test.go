package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigSuccess(t *testing.T) {
	original := AppConfig
	t.Cleanup(func() {
		AppConfig = original
	})

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	content := `{
		"database": {
			"path": "homebot.db"
		},
		"telegram": {
			"token": "test-token"
		},
		"reminders": {
			"morning_hour": 7,
			"default_recipient": 42
		},
		"wekan": {
			"url": "https://wekan.example.com",
			"board": "board-1",
			"users": [
				{"telegram_id": 42, "wekan_id": "wk-1", "name": "tester"}
			]
		}
	}`

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if err := LoadConfig(configPath); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if AppConfig.Database.Path != "homebot.db" {
		t.Errorf("expected sqlite path homebot.db, got %q", AppConfig.Database.Path)
	}
	if AppConfig.Telegram.Token != "test-token" {
		t.Errorf("expected token to be test-token, got %q", AppConfig.Telegram.Token)
	}
	if AppConfig.Reminders.MorningHour != 7 {
		t.Errorf("expected morning hour 7, got %d", AppConfig.Reminders.MorningHour)
	}
	if AppConfig.Reminders.EveningHour != 19 {
		t.Errorf("expected default evening hour 19, got %d", AppConfig.Reminders.EveningHour)
	}
	if AppConfig.Reminders.PollSeconds != 60 {
		t.Errorf("expected default poll interval 60s, got %d", AppConfig.Reminders.PollSeconds)
	}
	if len(AppConfig.Wekan.Users) != 1 || AppConfig.Wekan.Users[0].WekanID != "wk-1" {
		t.Errorf("unexpected wekan user mapping: %+v", AppConfig.Wekan.Users)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	original := AppConfig
	t.Cleanup(func() {
		AppConfig = original
	})

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error when loading a missing config file")
	}
}

func TestDefaultReminders(t *testing.T) {
	cfg := DefaultReminders()
	if cfg.MorningHour != 6 || cfg.EveningHour != 19 || cfg.PollSeconds != 60 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
