// Package repository provides data access layer for the skill module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	skillModel "github.com/gitcodegud/backend/internal/skill/model"
)

// Repository defines the interface for skill data access operations.
type Repository interface {
	// FirstOrCreateSkill finds a catalog entry by name or creates it with the given type.
	FirstOrCreateSkill(ctx context.Context, name, skillType string) (*skillModel.Skill, error)

	// FirstOrCreateUserSkill finds a pivot row for (user, skill) or seeds a new one.
	// An existing row is never modified. Returns whether a row was created.
	FirstOrCreateUserSkill(ctx context.Context, userID, skillID int64, seedXP, seedLevel int) (bool, error)

	// GetUserSkills returns the user's pivot rows joined with catalog names and types.
	GetUserSkills(ctx context.Context, userID int64) ([]skillModel.UserSkillRow, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new skill repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FirstOrCreateSkill finds a catalog entry by name or creates it with the given type.
func (r *repository) FirstOrCreateSkill(ctx context.Context, name, skillType string) (*skillModel.Skill, error) {
	var skill skillModel.Skill
	err := r.db.WithContext(ctx).
		Where("skill_name = ?", name).
		First(&skill).Error
	if err == nil {
		return &skill, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill = skillModel.Skill{SkillName: name, Type: skillType}
	if createErr := r.db.WithContext(ctx).Create(&skill).Error; createErr != nil {
		// Lost a race against a concurrent sync; re-read the winner.
		var existing skillModel.Skill
		if readErr := r.db.WithContext(ctx).
			Where("skill_name = ?", name).
			First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &skill, nil
}

// FirstOrCreateUserSkill finds a pivot row for (user, skill) or seeds a new one.
func (r *repository) FirstOrCreateUserSkill(ctx context.Context, userID, skillID int64, seedXP, seedLevel int) (bool, error) {
	var existing skillModel.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	pivot := skillModel.UserSkill{
		UserID:  userID,
		SkillID: skillID,
		XP:      seedXP,
		Level:   seedLevel,
	}
	if createErr := r.db.WithContext(ctx).Create(&pivot).Error; createErr != nil {
		return false, createErr
	}
	return true, nil
}

// GetUserSkills returns the user's pivot rows joined with catalog names and types.
func (r *repository) GetUserSkills(ctx context.Context, userID int64) ([]skillModel.UserSkillRow, error) {
	var rows []skillModel.UserSkillRow
	err := r.db.WithContext(ctx).
		Table("user_skills").
		Select("skills.skill_name, skills.type, user_skills.xp, user_skills.level").
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Where("user_skills.user_id = ?", userID).
		Order("user_skills.xp DESC, skills.skill_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []skillModel.UserSkillRow{}
	}
	return rows, nil
}
