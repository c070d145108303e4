package db

import (
	"time"

	"github.com/dbrandt/homebot/pkg/recurrence"
)

// Reminder is the sole persisted entity of the reminder engine. One-time
// reminders are created active and flipped inactive once delivered; the row
// is kept as history. Periodic reminders stay active until deleted, with
// NextAt advanced by (Interval, Unit) steps after each delivery.
type Reminder struct {
	ID        uint   `gorm:"primaryKey"`
	Owner     int64  `gorm:"index"`
	Subject   string `gorm:"not null"`
	Separator string
	NextAt    time.Time `gorm:"index:idx_reminders_due"`
	Active    bool      `gorm:"not null;index:idx_reminders_due"`
	Periodic  bool      `gorm:"not null;default:false"`
	Interval  int       `gorm:"not null;default:0"`
	Unit      string    `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CadenceUnit converts the stored unit column back to its typed form.
func (r *Reminder) CadenceUnit() recurrence.Unit {
	return recurrence.Unit(r.Unit)
}
