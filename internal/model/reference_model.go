package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReferenceDocument struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	TextContent string                      `gorm:"type:text"`
	FileUrl     string                      `gorm:"type:varchar(1024)"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt              `gorm:"index"`
}

func (ReferenceDocument) TableName() string {
	return "reference_documents"
}
