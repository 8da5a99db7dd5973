package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory SQLite needs a single connection so every query sees
	// the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return New(db, zap.NewNop().Sugar()), db
}

func serve(handler *Handler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.Check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHandler_Check(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := serve(handler)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		handler, db := setupHandler(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w := serve(handler)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})

	t.Run("healthy after real queries", func(t *testing.T) {
		handler, db := setupHandler(t)
		require.NoError(t, db.Exec("CREATE TABLE bounty_counts (n INTEGER)").Error)
		require.NoError(t, db.Exec("INSERT INTO bounty_counts (n) VALUES (1)").Error)

		w := serve(handler)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("concurrent checks", func(t *testing.T) {
		handler, _ := setupHandler(t)
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", handler.Check)

		codes := make(chan int, 10)
		for i := 0; i < 10; i++ {
			go func() {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
				codes <- w.Code
			}()
		}
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, <-codes)
		}
	})
}

func TestNew(t *testing.T) {
	handler, db := setupHandler(t)
	assert.Equal(t, db, handler.db)

	// Nil dependencies must not panic at construction time.
	assert.NotNil(t, New(nil, nil))
}
