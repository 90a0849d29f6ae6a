package services

import (
	"context"
	"errors"
	"mime/multipart"

	"vidhub/internal/media"
	"vidhub/internal/models"
	"vidhub/internal/repositories"
)

var errNotStubbed = errors.New("not stubbed")

// mockUserRepo implements repositories.UserRepository via function fields;
// unset methods fail loudly so tests only exercise what they stub.
type mockUserRepo struct {
	createFn               func(ctx context.Context, user *models.User) error
	getByIDFn              func(ctx context.Context, id int64) (*models.User, error)
	getByUsernameOrEmailFn func(ctx context.Context, username, email string) (*models.User, error)
	setRefreshTokenFn      func(ctx context.Context, id int64, token *string) error
	addWatchHistoryFn      func(ctx context.Context, userID, videoID int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn == nil {
		return errNotStubbed
	}
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	if m.getByUsernameOrEmailFn == nil {
		return nil, errNotStubbed
	}
	return m.getByUsernameOrEmailFn(ctx, username, email)
}

func (m *mockUserRepo) UpdateProfile(context.Context, *models.User) error { return errNotStubbed }
func (m *mockUserRepo) UpdateAvatar(context.Context, int64, string, string) error {
	return errNotStubbed
}
func (m *mockUserRepo) UpdateCoverImage(context.Context, int64, string, string) error {
	return errNotStubbed
}
func (m *mockUserRepo) UpdatePassword(context.Context, int64, string) error { return errNotStubbed }

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	if m.setRefreshTokenFn == nil {
		return errNotStubbed
	}
	return m.setRefreshTokenFn(ctx, id, token)
}

func (m *mockUserRepo) GetChannelProfile(context.Context, string, *int64) (*models.ChannelProfile, error) {
	return nil, errNotStubbed
}
func (m *mockUserRepo) AddWatchHistory(ctx context.Context, userID, videoID int64) error {
	if m.addWatchHistoryFn == nil {
		return errNotStubbed
	}
	return m.addWatchHistoryFn(ctx, userID, videoID)
}
func (m *mockUserRepo) GetWatchHistory(context.Context, int64, int, int) ([]*models.WatchHistoryEntry, int64, error) {
	return nil, 0, errNotStubbed
}

// mockVideoRepo stubs the video repository methods tests exercise.
type mockVideoRepo struct {
	getByIDFn     func(ctx context.Context, id int64) (*models.Video, error)
	getByIDIncrFn func(ctx context.Context, id int64) (*models.Video, error)
	deleteFn      func(ctx context.Context, id int64) error
	toggleFn      func(ctx context.Context, id int64) (*models.Video, error)
}

func (m *mockVideoRepo) Create(context.Context, *models.Video) error { return errNotStubbed }

func (m *mockVideoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	if m.getByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockVideoRepo) GetByIDIncrementingViews(ctx context.Context, id int64) (*models.Video, error) {
	if m.getByIDIncrFn == nil {
		return nil, errNotStubbed
	}
	return m.getByIDIncrFn(ctx, id)
}

func (m *mockVideoRepo) List(context.Context, repositories.ListVideosOptions) ([]*models.Video, int64, error) {
	return nil, 0, errNotStubbed
}
func (m *mockVideoRepo) ListByOwner(context.Context, int64) ([]*models.Video, error) {
	return nil, errNotStubbed
}
func (m *mockVideoRepo) Update(context.Context, *models.Video) error { return errNotStubbed }

func (m *mockVideoRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id)
}

func (m *mockVideoRepo) TogglePublished(ctx context.Context, id int64) (*models.Video, error) {
	if m.toggleFn == nil {
		return nil, errNotStubbed
	}
	return m.toggleFn(ctx, id)
}
func (m *mockVideoRepo) GetChannelStats(context.Context, int64) (*models.ChannelStats, error) {
	return nil, errNotStubbed
}

// mockLikeRepo implements repositories.LikeRepository.
type mockLikeRepo struct {
	getFn    func(ctx context.Context, userID int64, target repositories.LikeTarget) (*models.Like, error)
	createFn func(ctx context.Context, like *models.Like) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockLikeRepo) Get(ctx context.Context, userID int64, target repositories.LikeTarget) (*models.Like, error) {
	if m.getFn == nil {
		return nil, errNotStubbed
	}
	return m.getFn(ctx, userID, target)
}

func (m *mockLikeRepo) Create(ctx context.Context, like *models.Like) error {
	if m.createFn == nil {
		return errNotStubbed
	}
	return m.createFn(ctx, like)
}

func (m *mockLikeRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id)
}

func (m *mockLikeRepo) ListLikedVideos(context.Context, int64) ([]*models.Video, error) {
	return nil, errNotStubbed
}

// mockSubscriptionRepo implements repositories.SubscriptionRepository.
type mockSubscriptionRepo struct {
	getFn    func(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error)
	createFn func(ctx context.Context, sub *models.Subscription) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockSubscriptionRepo) Get(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	if m.getFn == nil {
		return nil, errNotStubbed
	}
	return m.getFn(ctx, subscriberID, channelID)
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	if m.createFn == nil {
		return errNotStubbed
	}
	return m.createFn(ctx, sub)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id)
}

func (m *mockSubscriptionRepo) ListSubscribers(context.Context, int64) ([]*models.PublicProfile, error) {
	return nil, errNotStubbed
}
func (m *mockSubscriptionRepo) ListSubscribedChannels(context.Context, int64) ([]*models.PublicProfile, error) {
	return nil, errNotStubbed
}

// fakeStorage satisfies media.Storage without touching the network.
type fakeStorage struct {
	uploads int
	deletes []string
	fail    error
}

func (f *fakeStorage) Upload(_ context.Context, header *multipart.FileHeader, kind media.Kind) (*media.UploadResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.uploads++
	return &media.UploadResult{
		URL:      "https://cdn.test/" + header.Filename,
		PublicID: "asset-" + header.Filename,
		Duration: 42,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID string, _ media.Kind) error {
	f.deletes = append(f.deletes, publicID)
	return nil
}

// noopStats satisfies StatsCache for services that invalidate on write.
type noopStats struct{}

func (noopStats) GetChannelStats(context.Context, int64) (*models.ChannelStats, bool) {
	return nil, false
}
func (noopStats) SetChannelStats(context.Context, int64, *models.ChannelStats)  {}
func (noopStats) InvalidateChannelStats(context.Context, int64)                 {}
