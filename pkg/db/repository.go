package db

import (
	"strconv"
	"time"

	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Export DB variable
var DB *gorm.DB

// InitDB opens the configured database and migrates the schema. A non-empty
// Path selects SQLite, anything else PostgreSQL.
func InitDB(cfg config.DatabaseConfig) error {
	gormLogger, gormErr := newGormLogger(config.AppConfig.Logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", config.AppConfig.Logging.GormLevel, "error", gormErr)
	}
	gormConfig := &gorm.Config{Logger: gormLogger}

	var err error
	if cfg.Path != "" {
		DB, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	} else {
		dsn := "host=" + cfg.Host +
			" user=" + cfg.User +
			" password=" + cfg.Password +
			" dbname=" + cfg.DBName +
			" port=" + strconv.Itoa(cfg.Port) +
			" sslmode=" + cfg.SSLMode
		DB, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	if err := DB.AutoMigrate(&Reminder{}); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	return nil
}

// ReminderStore wraps reminder persistence in single-statement operations.
// Each call is atomic on its own; the scheduler goroutine and the message
// handlers share one store and rely on that for their per-record writes.
type ReminderStore struct {
	db *gorm.DB
}

func NewReminderStore(gdb *gorm.DB) *ReminderStore {
	return &ReminderStore{db: gdb}
}

func (s *ReminderStore) Create(r *Reminder) error {
	return s.db.Create(r).Error
}

func (s *ReminderStore) Save(r *Reminder) error {
	return s.db.Save(r).Error
}

func (s *ReminderStore) Delete(id uint) error {
	return s.db.Delete(&Reminder{}, id).Error
}

func (s *ReminderStore) Get(id uint) (*Reminder, error) {
	var r Reminder
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Due returns all active reminders whose fire time is at or before now.
func (s *ReminderStore) Due(now time.Time) ([]Reminder, error) {
	var due []Reminder
	err := s.db.Where("active = ? AND next_at <= ?", true, now).
		Order("next_at ASC, id ASC").
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}

// ByOwner returns every reminder belonging to one user, soonest first.
func (s *ReminderStore) ByOwner(owner int64) ([]Reminder, error) {
	var list []Reminder
	err := s.db.Where("owner = ?", owner).
		Order("next_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
