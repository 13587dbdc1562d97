package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type CourseCatalog struct {
	Id             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string           `gorm:"type:text;not null;uniqueIndex"`
	Link           string           `gorm:"type:text"`
	Instructor     string           `gorm:"type:text"`
	Lessons        datatypes.JSON   `gorm:"type:jsonb"`
	LessonCount    int              `gorm:"default:0"`
	TitleEmbedding *pgvector.Vector `gorm:"type:vector(768)"` // 768 dims: text-embedding-004 / nomic-embed-text
	CreatedAt      time.Time        `gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime"`
}

func (CourseCatalog) TableName() string {
	return "course_catalog"
}
