package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string         `gorm:"type:varchar(255);not null"`
	Level         string         `gorm:"type:varchar(64);index"`
	Module        string         `gorm:"type:varchar(255)"`
	Description   string         `gorm:"type:text"`
	Content       string         `gorm:"type:text"`
	ContentStatus string         `gorm:"type:varchar(32);not null;default:'empty'"`
	GeneratedAt   *time.Time     `gorm:"type:timestamptz"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Lesson) TableName() string {
	return "lessons"
}
