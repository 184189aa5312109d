package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase gives a model a string UUID primary key assigned on insert.
type UUIDBase struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}
