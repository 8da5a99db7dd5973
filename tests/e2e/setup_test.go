//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/client"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

// E2ETestSuite contains test infrastructure
type E2ETestSuite struct {
	suite.Suite
	ctx              context.Context
	pgContainer      *postgres.PostgresContainer
	db               *gorm.DB
	appContainer     testcontainers.Container
	baseURL          string
	httpClient       *http.Client
	connectionString string
}

// SetupSuite runs once before all tests
func (s *E2ETestSuite) SetupSuite() {
	s.ctx = context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(s.ctx,
		"postgres:12-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(s.T(), err, "failed to start PostgreSQL container")
	s.pgContainer = pgContainer

	// Get connection string
	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "failed to get connection string")
	s.connectionString = connStr

	// Connect to database (for seeding and assertions only)
	// Migrations are applied by the application container on startup; the
	// migrate step tolerates ErrNoChange so repeated runs are safe.
	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "failed to connect to database")
	s.db = db

	// Get PostgreSQL container's internal IP address for inter-container
	// communication; the mapped host/port only works from the test process.
	containerName, err := pgContainer.Name(s.ctx)
	require.NoError(s.T(), err, "failed to get PostgreSQL container name")

	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	require.NoError(s.T(), err, "failed to create Docker client")
	defer dockerClient.Close()

	containerNameClean := strings.TrimPrefix(containerName, "/")
	containerInfo, err := dockerClient.ContainerInspect(s.ctx, containerNameClean)
	require.NoError(s.T(), err, "failed to inspect PostgreSQL container")

	var dbHost string
	var dbPort = "5432"
	if len(containerInfo.NetworkSettings.Networks) > 0 {
		for _, network := range containerInfo.NetworkSettings.Networks {
			dbHost = network.IPAddress
			break
		}
	}

	// Fallback to container name if IP not found
	if dbHost == "" {
		dbHost = containerNameClean
	}

	// Start application container from a pre-built image to avoid
	// rebuilding for each suite run.
	appContainer, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "gitcodegud-e2e:test",
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"DB_HOST":                dbHost,
				"DB_PORT":                dbPort,
				"DB_USER":                "testuser",
				"DB_PASSWORD":            "testpass",
				"DB_NAME":                "testdb",
				"DB_SSLMODE":             "disable",
				"DB_TIMEZONE":            "UTC",
				"DB_RETRY_MAX_ATTEMPTS":  "5",
				"DB_RETRY_INITIAL_DELAY": "1s",
				"DB_RETRY_MAX_DELAY":     "30s",
				"DB_RETRY_MULTIPLIER":    "2.0",
				"SERVER_HOST":            "",
				"SERVER_PORT":            ":8080",
				"SERVER_READ_TIMEOUT":    "10s",
				"SERVER_WRITE_TIMEOUT":   "10s",
				"SERVER_IDLE_TIMEOUT":    "120s",
				"GIN_MODE":               "release",
				"LOG_LEVEL":              "info",
				"LOG_FORMAT":             "json",
				"LOG_OUTPUT":             "stdout",
				"MIGRATIONS_PATH":        "migrations",
				"GITHUB_CLIENT_ID":       "e2e-client-id",
				"GITHUB_CLIENT_SECRET":   "e2e-client-secret",
				"GITHUB_API_BASE_URL":    "https://api.github.com",
				"GITHUB_API_TIMEOUT":     "5s",
			},
			WaitingFor: wait.ForHTTP("/health").
				WithPort("8080/tcp").
				WithStartupTimeout(120 * time.Second).
				WithPollInterval(2 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err, "failed to start application container")
	s.appContainer = appContainer

	// Get application URL
	host, err := appContainer.Host(s.ctx)
	require.NoError(s.T(), err, "failed to get container host")

	port, err := appContainer.MappedPort(s.ctx, "8080")
	require.NoError(s.T(), err, "failed to get container port")

	s.baseURL = fmt.Sprintf("http://%s:%s", host, port.Port())
	s.httpClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	s.waitForApp()
	s.verifyMigrations()
}

// TearDownSuite runs once after all tests
func (s *E2ETestSuite) TearDownSuite() {
	if s.appContainer != nil {
		_ = s.appContainer.Terminate(s.ctx)
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

// SetupTest runs before each test
func (s *E2ETestSuite) SetupTest() {
	s.cleanDatabase()
}

// cleanDatabase truncates all tables
func (s *E2ETestSuite) cleanDatabase() {
	s.db.Exec("TRUNCATE TABLE submissions CASCADE")
	s.db.Exec("TRUNCATE TABLE bounties CASCADE")
	s.db.Exec("TRUNCATE TABLE issues CASCADE")
	s.db.Exec("TRUNCATE TABLE repos CASCADE")
	s.db.Exec("TRUNCATE TABLE user_skills CASCADE")
	s.db.Exec("TRUNCATE TABLE skills CASCADE")
	s.db.Exec("TRUNCATE TABLE users CASCADE")
}

// waitForApp waits for the application to be ready
func (s *E2ETestSuite) waitForApp() {
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := s.httpClient.Get(s.baseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(1 * time.Second)
	}
	s.T().Fatal("application did not become ready in time")
}

// verifyMigrations checks that the application container applied migrations
func (s *E2ETestSuite) verifyMigrations() {
	tables := []string{"users", "skills", "user_skills", "repos", "issues", "bounties", "submissions"}

	for _, table := range tables {
		var exists bool
		err := s.db.Raw(`
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = ?
			)`, table).Scan(&exists).Error
		require.NoError(s.T(), err, "failed to check table %s", table)
		require.True(s.T(), exists, "table %s does not exist - migrations were not applied", table)
	}
}

// HTTP helpers

// doRequest performs an HTTP request, optionally acting as the given user.
func (s *E2ETestSuite) doRequest(method, path string, userID int64, body io.Reader) (*http.Response, []byte) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	require.NoError(s.T(), err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "failed to read response body")
	resp.Body.Close()

	return resp, respBody
}

// parseErrorResponse parses the structured error payload
func (s *E2ETestSuite) parseErrorResponse(respBody []byte) (string, string) {
	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	err := json.Unmarshal(respBody, &errResp)
	require.NoError(s.T(), err, "failed to unmarshal error response")
	return errResp.Error.Code, errResp.Error.Message
}

// Seeding helpers. Bounty creation normally goes through the GitHub API for
// permission checks, so e2e scenarios seed repos, issues and bounties
// directly and exercise the rest of the lifecycle over HTTP.

func (s *E2ETestSuite) seedUser(name string, xp int) *userModel.User {
	u := &userModel.User{
		Name:            name,
		Nickname:        name,
		Email:           name + "@example.com",
		OAuthProvider:   "github",
		OAuthProviderID: strconv.Itoa(1000 + xp),
		XP:              xp,
	}
	require.NoError(s.T(), s.db.Create(u).Error, "failed to seed user")
	return u
}

func (s *E2ETestSuite) seedBounty(owner *userModel.User, repoURL, issueURL, title string, rewardXP int) *bountyModel.Bounty {
	repo := &bountyModel.Repo{
		UserID: owner.ID,
		URL:    repoURL,
		GitID:  "gid-" + title,
	}
	require.NoError(s.T(), s.db.Create(repo).Error, "failed to seed repo")

	issue := &bountyModel.Issue{
		RepoID: repo.ID,
		URL:    issueURL,
		Name:   title,
	}
	require.NoError(s.T(), s.db.Create(issue).Error, "failed to seed issue")

	bounty := &bountyModel.Bounty{
		IssueID:   issue.ID,
		Title:     title,
		RewardXP:  rewardXP,
		Status:    bountyModel.StatusOpen,
		Languages: []string{"Go"},
	}
	require.NoError(s.T(), s.db.Create(bounty).Error, "failed to seed bounty")
	return bounty
}

func (s *E2ETestSuite) getBounty(bountyID, userID int64) (*http.Response, *bountyModel.BountyResponse) {
	resp, respBody := s.doRequest("GET", fmt.Sprintf("/bounties/%d", bountyID), userID, nil)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	var result bountyModel.BountyResponse
	err := json.Unmarshal(respBody, &result)
	require.NoError(s.T(), err, "failed to unmarshal bounty response")
	return resp, &result
}
