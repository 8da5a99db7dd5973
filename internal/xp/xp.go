// Package xp computes levels and level progress from experience points.
package xp

import "math"

// MaxLevel is the highest reachable level.
const MaxLevel = 9

// levelThresholds holds the cumulative XP lower bound for each level 1..9.
// The trailing value is the progress ceiling for the top level; it does not
// introduce a tenth level.
var levelThresholds = [10]int{0, 1000, 5000, 15000, 30000, 60000, 120000, 250000, 400000, 500000}

// LevelFor returns the level (1..9) for a cumulative XP total.
// Negative input is treated as zero XP.
func LevelFor(totalXP int) int {
	level := 1
	for l := 2; l <= MaxLevel; l++ {
		if totalXP < levelThresholds[l-1] {
			break
		}
		level = l
	}
	return level
}

// Progress describes position within a level band.
type Progress struct {
	// CurrentLevelXP is the cumulative XP floor of the current level.
	CurrentLevelXP int `json:"current_level_xp"`
	// NextLevelXP is the cumulative XP ceiling of the current level.
	NextLevelXP int `json:"next_level_xp"`
	// ProgressXP is the XP earned past the current level floor.
	ProgressXP int `json:"progress_xp"`
	// TotalNeeded is the width of the current level band.
	TotalNeeded int `json:"total_needed"`
	// Percentage is completion of the current band, 0..100.
	Percentage int `json:"progress_percentage"`
}

// LevelProgress returns progress within the band of the given level.
// level is expected to equal LevelFor(totalXP); out-of-range levels clamp
// to the nearest valid band.
func LevelProgress(totalXP, level int) Progress {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	currentLevelXP := levelThresholds[level-1]
	nextLevelXP := levelThresholds[level]

	progressXP := totalXP - currentLevelXP
	totalNeeded := nextLevelXP - currentLevelXP

	percentage := 100
	if totalNeeded > 0 {
		percentage = int(math.Round(float64(progressXP) / float64(totalNeeded) * 100))
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	return Progress{
		CurrentLevelXP: currentLevelXP,
		NextLevelXP:    nextLevelXP,
		ProgressXP:     progressXP,
		TotalNeeded:    totalNeeded,
		Percentage:     percentage,
	}
}
