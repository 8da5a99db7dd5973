package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
	"github.com/gitcodegud/backend/internal/middleware"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, user *userModel.User, req *bountyModel.CreateBountyRequest) (*bountyModel.BountyResponse, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.BountyResponse), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error) {
	args := m.Called(ctx, user, bountyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.BountyResponse), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, user *userModel.User, bountyID int64, req *bountyModel.UpdateBountyRequest) (*bountyModel.BountyResponse, error) {
	args := m.Called(ctx, user, bountyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.BountyResponse), args.Error(1)
}

func (m *mockService) Archive(ctx context.Context, user *userModel.User, bountyID int64) error {
	args := m.Called(ctx, user, bountyID)
	return args.Error(0)
}

func (m *mockService) Restore(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error) {
	args := m.Called(ctx, user, bountyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.BountyResponse), args.Error(1)
}

func (m *mockService) ListOpen(ctx context.Context, page, perPage int) (*bountyModel.ListBountiesResponse, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.ListBountiesResponse), args.Error(1)
}

func (m *mockService) ListMine(ctx context.Context, user *userModel.User) ([]bountyModel.BountyResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bountyModel.BountyResponse), args.Error(1)
}

func (m *mockService) Submit(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.SubmissionResponse, error) {
	args := m.Called(ctx, user, bountyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.SubmissionResponse), args.Error(1)
}

func (m *mockService) Export(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.ExportResponse, error) {
	args := m.Called(ctx, user, bountyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bountyModel.ExportResponse), args.Error(1)
}

func setupRouter(svc *mockService, actor *userModel.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, actor)
			c.Next()
		})
	}

	h := New(svc, zap.NewNop().Sugar())
	r.GET("/bounties", h.List)
	r.GET("/bounties/:id", h.Get)
	r.POST("/bounties", h.Create)
	r.PATCH("/bounties/:id", h.Update)
	r.DELETE("/bounties/:id", h.Archive)
	r.POST("/bounties/:id/restore", h.Restore)
	r.POST("/bounties/:id/submissions", h.Submit)
	r.GET("/bounties/:id/export", h.Export)
	return r
}

func errorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &payload))
	return payload.Error.Code
}

func TestHandler_Create(t *testing.T) {
	actor := &userModel.User{ID: 1}

	t.Run("created", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, actor, mock.Anything).
			Return(&bountyModel.BountyResponse{ID: 42, Title: "Fix it", Status: "open"}, nil)
		r := setupRouter(svc, actor)

		body := `{"title":"Fix it","reward_xp":100,"repo_url":"https://github.com/o/r","issue_url":"https://github.com/o/r/issues/1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bounties", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing fields rejected by binding", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bounties", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, actor, mock.Anything).
			Return(nil, bountyModel.NewValidationError("reward_xp", "must be between 1 and 1000"))
		r := setupRouter(svc, actor)

		body := `{"title":"Fix it","reward_xp":9999,"repo_url":"https://github.com/o/r","issue_url":"https://github.com/o/r/issues/1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bounties", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w.Body))
	})

	t.Run("duplicate issue", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, actor, mock.Anything).
			Return(nil, bountyModel.ErrBountyExists)
		r := setupRouter(svc, actor)

		body := `{"title":"Fix it","reward_xp":100,"repo_url":"https://github.com/o/r","issue_url":"https://github.com/o/r/issues/1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bounties", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOUNTY_EXISTS", errorCode(t, w.Body))
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, actor, mock.Anything).
			Return(nil, bountyModel.ErrForbidden)
		r := setupRouter(svc, actor)

		body := `{"title":"Fix it","reward_xp":100,"repo_url":"https://github.com/o/r","issue_url":"https://github.com/o/r/issues/1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bounties", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, (*userModel.User)(nil), int64(42)).
			Return(&bountyModel.BountyResponse{ID: 42, Title: "Fix it"}, nil)
		r := setupRouter(svc, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bounties/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, (*userModel.User)(nil), int64(42)).
			Return(nil, bountyModel.ErrBountyNotFound)
		r := setupRouter(svc, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bounties/42", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bounties/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Get")
	})
}

func TestHandler_Lifecycle(t *testing.T) {
	actor := &userModel.User{ID: 1}

	t.Run("archive", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Archive", mock.Anything, actor, int64(42)).Return(nil)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/bounties/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("double archive conflicts", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Archive", mock.Anything, actor, int64(42)).Return(bountyModel.ErrBountyArchived)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/bounties/42", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOUNTY_ARCHIVED", errorCode(t, w.Body))
	})

	t.Run("restore active conflicts", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Restore", mock.Anything, actor, int64(42)).
			Return(nil, bountyModel.ErrBountyNotArchived)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bounties/42/restore", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOUNTY_NOT_ARCHIVED", errorCode(t, w.Body))
	})
}

func TestHandler_Submit(t *testing.T) {
	actor := &userModel.User{ID: 2}

	t.Run("created", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Submit", mock.Anything, actor, int64(42)).
			Return(&bountyModel.SubmissionResponse{ID: 1, BountyID: 42, UserID: 2, Status: "pending"}, nil)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bounties/42/submissions", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate submission conflicts", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Submit", mock.Anything, actor, int64(42)).
			Return(nil, bountyModel.ErrSubmissionExists)
		r := setupRouter(svc, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bounties/42/submissions", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_List(t *testing.T) {
	svc := new(mockService)
	svc.On("ListOpen", mock.Anything, 2, 5).
		Return(&bountyModel.ListBountiesResponse{
			Bounties: []bountyModel.BountyResponse{}, Page: 2, PerPage: 5, Total: 0,
		}, nil)
	r := setupRouter(svc, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bounties?page=2&per_page=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
