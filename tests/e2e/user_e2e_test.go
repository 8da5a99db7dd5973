//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statisticsModel "github.com/gitcodegud/backend/internal/statistics/model"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

func (s *E2ETestSuite) TestLeaderboardRanking() {
	s.seedUser("alice", 5000)
	s.seedUser("bob", 12000)
	s.seedUser("carol", 800)

	resp, respBody := s.doRequest("GET", "/leaderboard", 0, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var board userModel.LeaderboardResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &board))
	require.Len(s.T(), board.Users, 3)
	assert.Equal(s.T(), int64(3), board.Total)
	assert.Equal(s.T(), "bob", board.Users[0].Name)
	assert.Equal(s.T(), 1, board.Users[0].Rank)
	assert.Equal(s.T(), "alice", board.Users[1].Name)
	assert.Equal(s.T(), "carol", board.Users[2].Name)
	assert.Equal(s.T(), 3, board.Users[2].Rank)
}

func (s *E2ETestSuite) TestPublicProfile() {
	user := s.seedUser("alice", 1200)

	resp, respBody := s.doRequest("GET", fmt.Sprintf("/users/%d", user.ID), 0, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var profile userModel.ProfileResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &profile))
	assert.Equal(s.T(), user.ID, profile.ID)
	assert.Equal(s.T(), "alice", profile.Nickname)
	assert.NotEmpty(s.T(), profile.Avatar)

	resp, respBody = s.doRequest("GET", "/users/999999", 0, nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) TestUserSearch() {
	s.seedUser("alice", 0)
	s.seedUser("alicia", 0)
	s.seedUser("bob", 0)

	resp, respBody := s.doRequest("GET", "/search/users?nickname=ali", 0, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var result userModel.SearchUsersResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &result))
	assert.Equal(s.T(), int64(2), result.Total)
}

func (s *E2ETestSuite) TestBountyStatistics() {
	owner := s.seedUser("alice", 0)
	hunter := s.seedUser("bob", 0)
	open := s.seedBounty(owner, "https://github.com/alice/widgets", "https://github.com/alice/widgets/issues/1", "Fix watcher", 100)
	toArchive := s.seedBounty(owner, "https://github.com/alice/gadgets", "https://github.com/alice/gadgets/issues/2", "Add caching", 300)

	resp, _ := s.doRequest("POST", fmt.Sprintf("/bounties/%d/submissions", open.ID), hunter.ID, nil)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	resp, _ = s.doRequest("DELETE", fmt.Sprintf("/bounties/%d", toArchive.ID), owner.ID, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, respBody := s.doRequest("GET", "/statistics/bounties", 0, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var stats statisticsModel.BountyStatisticsResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &stats))
	assert.Equal(s.T(), 2, stats.Statistics.TotalBounties)
	assert.Equal(s.T(), 1, stats.Statistics.OpenBounties)
	assert.Equal(s.T(), 1, stats.Statistics.ArchivedBounties)
	assert.Equal(s.T(), 1, stats.Statistics.BountiesWith1Submission)
	assert.Equal(s.T(), 1, stats.Statistics.BountiesWith0Submissions)
	assert.InDelta(s.T(), 200.0, stats.Statistics.AverageRewardXP, 0.01)
}
