package model

import (
	"time"
)

// Skill types.
const (
	TypeLanguage  = "language"
	TypeFramework = "framework"
	TypeTool      = "tool"
	TypeDatabase  = "database"
	TypeOther     = "other"
)

// Skill represents an entry in the global skill catalog.
// Matches the skills table schema.
type Skill struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	SkillName string    `gorm:"column:skill_name;type:varchar(255);not null;uniqueIndex"  json:"skill_name"`
	Type      string    `gorm:"column:type;type:varchar(32);not null;default:other"      json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Skill) TableName() string {
	return "skills"
}

// UserSkill represents a per-user skill record carrying XP and level.
// Matches the user_skills table schema; (user_id, skill_id) is unique.
type UserSkill struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                                             json:"id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_user_skills_user_skill"      json:"user_id"`
	SkillID   int64     `gorm:"column:skill_id;type:bigint;not null;uniqueIndex:idx_user_skills_user_skill"     json:"skill_id"`
	XP        int       `gorm:"column:xp;type:bigint;not null;default:0"                                        json:"xp"`
	Level     int       `gorm:"column:level;type:int;not null;default:1"                                        json:"level"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                       json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                       json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserSkill) TableName() string {
	return "user_skills"
}

// UserSkillRow is a joined view of a pivot row with its catalog entry.
type UserSkillRow struct {
	SkillName string `gorm:"column:skill_name" json:"skill_name"`
	Type      string `gorm:"column:type"       json:"type"`
	XP        int    `gorm:"column:xp"         json:"xp"`
	Level     int    `gorm:"column:level"      json:"level"`
}
