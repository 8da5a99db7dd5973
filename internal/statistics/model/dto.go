// Package model provides data transfer objects for statistics module.
package model

// SkillStatistics represents adoption statistics for one catalog skill.
type SkillStatistics struct {
	SkillName   string `json:"skill_name"`
	Type        string `json:"type"`
	HolderCount int    `json:"holder_count"`
	TotalXP     int    `json:"total_xp"`
}

// SkillsStatisticsResponse represents response for skill statistics.
type SkillsStatisticsResponse struct {
	Skills []SkillStatistics `json:"skills"`
	Total  int               `json:"total"`
}

// BountyStatistics represents aggregate statistics over bounties.
type BountyStatistics struct {
	TotalBounties             int     `json:"total_bounties"`
	OpenBounties              int     `json:"open_bounties"`
	ArchivedBounties          int     `json:"archived_bounties"`
	AverageRewardXP           float64 `json:"average_reward_xp"`
	BountiesWith0Submissions  int     `json:"bounties_with_0_submissions"`
	BountiesWith1Submission   int     `json:"bounties_with_1_submission"`
	BountiesWithManySubmitted int     `json:"bounties_with_2_plus_submissions"`
}

// BountyStatisticsResponse represents response for bounty statistics.
type BountyStatisticsResponse struct {
	Statistics BountyStatistics `json:"statistics"`
}
