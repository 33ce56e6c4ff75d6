package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Heartbeat struct {
	ID       int       `gorm:"primaryKey;column:id"`
	LastPing time.Time `gorm:"column:last_ping"`
}

func (Heartbeat) TableName() string {
	return "heartbeat"
}

type HeartbeatRepository struct {
	DB *gorm.DB
}

func NewHeartbeatRepository(db *gorm.DB) *HeartbeatRepository {
	return &HeartbeatRepository{DB: db}
}

// Touch writes a single row so scheduled pings register as database
// activity on hosts that pause idle instances.
func (r *HeartbeatRepository) Touch(ctx context.Context) (time.Time, error) {
	row := Heartbeat{ID: 1, LastPing: time.Now().UTC()}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_ping"}),
		}).
		Create(&row).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to touch heartbeat: %w", err)
	}

	return row.LastPing, nil
}
