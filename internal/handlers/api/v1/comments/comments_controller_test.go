package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidhub/internal/middleware"
	"vidhub/internal/models"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCommentService struct {
	createFn func(ctx context.Context, req *services.CreateCommentRequest) (*models.Comment, error)
	listFn   func(ctx context.Context, videoID int64, page, pageSize int) (*models.PaginatedResponse[*models.Comment], error)
	deleteFn func(ctx context.Context, commentID, userID int64) error
}

func (f *fakeCommentService) Create(ctx context.Context, req *services.CreateCommentRequest) (*models.Comment, error) {
	return f.createFn(ctx, req)
}

func (f *fakeCommentService) ListByVideo(ctx context.Context, videoID int64, page, pageSize int) (*models.PaginatedResponse[*models.Comment], error) {
	return f.listFn(ctx, videoID, page, pageSize)
}

func (f *fakeCommentService) Update(context.Context, *services.UpdateCommentRequest) (*models.Comment, error) {
	return nil, services.NewInternalError("not stubbed", nil)
}

func (f *fakeCommentService) Delete(ctx context.Context, commentID, userID int64) error {
	return f.deleteFn(ctx, commentID, userID)
}

func newTestRouter(svc services.CommentService) http.Handler {
	sc := &services.ServiceCollection{Comments: svc}
	ctrl := NewCommentController(sc, zap.NewNop(), response.NewBuilder(zap.NewNop()))

	r := chi.NewRouter()
	r.Get("/comments/{videoId}", ctrl.List)
	r.Post("/comments/{videoId}", ctrl.Create)
	r.Delete("/comments/c/{commentId}", ctrl.Delete)
	return r
}

func asUser(r *http.Request, userID int64) *http.Request {
	user := &models.User{ID: userID, Username: "chai"}
	return r.WithContext(context.WithValue(r.Context(), middleware.CurrentUserKey, user))
}

func TestCreateComment(t *testing.T) {
	var got *services.CreateCommentRequest
	svc := &fakeCommentService{
		createFn: func(_ context.Context, req *services.CreateCommentRequest) (*models.Comment, error) {
			got = req
			return &models.Comment{ID: 1, VideoID: req.VideoID, OwnerID: req.UserID, Content: req.Content}, nil
		},
	}
	router := newTestRouter(svc)

	body := strings.NewReader(`{"content":"great video"}`)
	r := asUser(httptest.NewRequest(http.MethodPost, "/comments/10", body), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.VideoID)
	assert.Equal(t, int64(7), got.UserID, "user id comes from the principal, not the body")
	assert.Equal(t, "great video", got.Content)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateCommentRejectsBadBody(t *testing.T) {
	router := newTestRouter(&fakeCommentService{})

	r := asUser(httptest.NewRequest(http.MethodPost, "/comments/10", strings.NewReader("{not json")), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCommentRejectsBadVideoID(t *testing.T) {
	router := newTestRouter(&fakeCommentService{})

	r := asUser(httptest.NewRequest(http.MethodPost, "/comments/abc", strings.NewReader(`{"content":"x"}`)), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCommentsPassesPagination(t *testing.T) {
	var gotPage, gotSize int
	svc := &fakeCommentService{
		listFn: func(_ context.Context, videoID int64, page, pageSize int) (*models.PaginatedResponse[*models.Comment], error) {
			gotPage, gotSize = page, pageSize
			return &models.PaginatedResponse[*models.Comment]{
				Data:       []*models.Comment{{ID: 1, VideoID: videoID}},
				Pagination: models.NewPaginationMeta(page, pageSize, 1),
			}, nil
		},
	}
	router := newTestRouter(svc)

	r := asUser(httptest.NewRequest(http.MethodGet, "/comments/10?page=2&limit=5", nil), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotSize)
}

func TestDeleteCommentForbiddenPropagates(t *testing.T) {
	svc := &fakeCommentService{
		deleteFn: func(context.Context, int64, int64) error {
			return services.NewForbiddenError("you do not own this comment")
		},
	}
	router := newTestRouter(svc)

	r := asUser(httptest.NewRequest(http.MethodDelete, "/comments/c/5", nil), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
