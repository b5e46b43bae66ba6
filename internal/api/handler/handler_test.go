package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository/memory"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlobs struct {
	mu   sync.Mutex
	n    int
	fail bool
}

func (b *memBlobs) Store(_ context.Context, localPath string, kind service.BlobKind) (model.Asset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return model.Asset{}, errors.New("bucket unavailable")
	}
	if _, err := os.Stat(localPath); err != nil {
		return model.Asset{}, err
	}
	b.n++
	id := fmt.Sprintf("%s/%d", kind, b.n)
	return model.Asset{URL: "http://blobs.test/" + id, AssetID: id}, nil
}

func (b *memBlobs) Delete(context.Context, string, service.BlobKind) error { return nil }

type testEnv struct {
	t       *testing.T
	engine  *gin.Engine
	blobs   *memBlobs
	tempDir string
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

type page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	TotalPages  int64 `json:"totalPages"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	counter := service.NewViewCounter(store)
	t.Cleanup(counter.Wait)

	jwtCfg := config.JWTConfig{Secret: "handler-test-secret", Issuer: "vidtube-test", ExpireHours: 1}
	upload := config.UploadConfig{TempDir: t.TempDir(), MaxVideoSizeMB: 1, MaxImageSizeMB: 1}
	blobs := &memBlobs{}

	userService := service.NewUserService(store)
	videoService := service.NewVideoService(store, counter, blobs, nil, nil, nil)

	r := gin.New()
	r.Use(middleware.Recovery())
	router.Setup(r, &jwtCfg, &router.Handlers{
		Auth:         handler.NewAuthHandler(service.NewAuthService(store, jwtCfg), userService),
		User:         handler.NewUserHandler(userService),
		Video:        handler.NewVideoHandler(videoService, upload),
		Like:         handler.NewLikeHandler(service.NewLikeService(store)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(store)),
		Comment:      handler.NewCommentHandler(service.NewCommentService(store)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(store)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(store)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(store, nil, 0)),
	})

	return &testEnv{t: t, engine: r, blobs: blobs, tempDir: upload.TempDir}
}

func (e *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(req, token)
}

func (e *testEnv) upload(method, path, token string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(e.t, mw.WriteField(k, v))
	}
	for field, name := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(e.t, err)
		_, err = part.Write([]byte("fake media bytes"))
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.serve(req, token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (envelope, T) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.StatusCode)

	var data T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, &data))
	}
	return env, data
}

// signup 注册并登录，返回用户 ID 和 Token
func (e *testEnv) signup(username string) (uuid.UUID, string) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username, "fullName": username + " full", "password": "secret123",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username, "password": "secret123",
	})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	_, token := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}](e.t, rec)
	return token.User.ID, token.Token
}

// publish 上传并公开一个视频
func (e *testEnv) publish(token, title string) uuid.UUID {
	e.t.Helper()
	rec := e.upload(http.MethodPost, "/api/v1/videos", token,
		map[string]string{"title": title, "description": title + " desc"},
		map[string]string{"videoFile": "clip.mp4", "thumbnail": "cover.jpg"},
	)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	_, video := decode[struct {
		ID uuid.UUID `json:"id"`
	}](e.t, rec)

	rec = e.do(http.MethodPatch, "/api/v1/videos/toggle/publish/"+video.ID.String(), token, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	return video.ID
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup("Alice")

	rec := env.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, me := decode[struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
	}](t, rec)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "alice", me.Username)

	rec = env.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "ALICE", "fullName": "again", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFailureEnvelopeHasNoData(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/tweets", "", map[string]string{"content": "hi"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.EqualValues(t, http.StatusUnauthorized, raw["statusCode"])
	assert.NotEmpty(t, raw["message"])
	assert.NotContains(t, raw, "data")
}

func TestMalformedIDIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/videos/not-a-uuid", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	res, _ := decode[any](t, rec)
	assert.Equal(t, service.ErrInvalidVideoID.Error(), res.Message)

	rec = env.do(http.MethodGet, "/api/v1/videos/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ownerID, owner := env.signup("owner")
	_, fan := env.signup("fan")

	rec := env.upload(http.MethodPost, "/api/v1/videos", owner,
		map[string]string{"title": "First", "description": "hello"},
		map[string]string{"videoFile": "clip.mp4", "thumbnail": "cover.jpg"},
	)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, created := decode[struct {
		ID          uuid.UUID `json:"id"`
		IsPublished bool      `json:"isPublished"`
	}](t, rec)
	assert.False(t, created.IsPublished)

	// 临时文件已清理
	left, err := os.ReadDir(env.tempDir)
	require.NoError(t, err)
	assert.Empty(t, left)

	rec = env.do(http.MethodGet, "/api/v1/videos", "", nil)
	_, list := decode[page[struct{}]](t, rec)
	assert.Zero(t, list.TotalDocs)

	rec = env.do(http.MethodPatch, "/api/v1/videos/toggle/publish/"+created.ID.String(), fan, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(http.MethodPatch, "/api/v1/videos/toggle/publish/"+created.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/videos?userId="+ownerID.String(), "", nil)
	_, list = decode[page[struct{}]](t, rec)
	assert.EqualValues(t, 1, list.TotalDocs)

	rec = env.do(http.MethodPost, "/api/v1/likes/toggle/v/"+created.ID.String(), fan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, like := decode[struct {
		IsLiked    bool  `json:"isLiked"`
		LikesCount int64 `json:"likesCount"`
	}](t, rec)
	assert.True(t, like.IsLiked)
	assert.EqualValues(t, 1, like.LikesCount)

	type detail struct {
		Views      int64 `json:"views"`
		LikesCount int64 `json:"likesCount"`
		IsLiked    bool  `json:"isLiked"`
		Owner      struct {
			ID           uuid.UUID `json:"id"`
			IsSubscribed bool      `json:"isSubscribed"`
		} `json:"owner"`
	}
	rec = env.do(http.MethodGet, "/api/v1/videos/"+created.ID.String(), fan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, d := decode[detail](t, rec)
	assert.True(t, d.IsLiked)
	assert.EqualValues(t, 1, d.LikesCount)
	assert.EqualValues(t, 1, d.Views)
	assert.Equal(t, ownerID, d.Owner.ID)

	rec = env.do(http.MethodGet, "/api/v1/videos/"+created.ID.String(), "", nil)
	_, d = decode[detail](t, rec)
	assert.False(t, d.IsLiked)

	rec = env.do(http.MethodDelete, "/api/v1/videos/"+created.ID.String(), fan, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(http.MethodDelete, "/api/v1/videos/"+created.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodGet, "/api/v1/videos/"+created.ID.String(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup("uploader")

	rec := env.upload(http.MethodPost, "/api/v1/videos", token,
		map[string]string{"title": "t", "description": "d"},
		map[string]string{"videoFile": "notes.txt", "thumbnail": "cover.jpg"},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.upload(http.MethodPost, "/api/v1/videos", token,
		map[string]string{"title": "t", "description": "d"},
		map[string]string{"videoFile": "clip.mp4"},
	)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	res, _ := decode[any](t, rec)
	assert.Equal(t, service.ErrThumbnailRequired.Error(), res.Message)
}

func TestDependencyFailureHidesCause(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup("uploader")
	env.blobs.fail = true

	rec := env.upload(http.MethodPost, "/api/v1/videos", token,
		map[string]string{"title": "t", "description": "d"},
		map[string]string{"videoFile": "clip.mp4", "thumbnail": "cover.jpg"},
	)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bucket unavailable")
}

func TestSubscribersPaginationAndMutualFlag(t *testing.T) {
	env := newTestEnv(t)
	channelID, channel := env.signup("channel")
	backID, back := env.signup("back")
	_, plain := env.signup("plain")

	for _, token := range []string{back, plain} {
		rec := env.do(http.MethodPost, "/api/v1/subscriptions/c/"+channelID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := env.do(http.MethodPost, "/api/v1/subscriptions/c/"+backID.String(), channel, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/subscriptions/c/"+channelID.String(), channel, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	type subscriber struct {
		Subscriber struct {
			ID uuid.UUID `json:"id"`
		} `json:"subscriber"`
		ChannelSubscribesBack bool `json:"channelSubscribesBack"`
	}

	rec = env.do(http.MethodGet, "/api/v1/subscriptions/c/"+channelID.String()+"?page=1&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, first := decode[page[subscriber]](t, rec)
	assert.EqualValues(t, 2, first.TotalDocs)
	assert.EqualValues(t, 2, first.TotalPages)
	assert.Len(t, first.Docs, 1)
	assert.True(t, first.HasNextPage)
	assert.False(t, first.HasPrevPage)

	rec = env.do(http.MethodGet, "/api/v1/subscriptions/c/"+channelID.String(), "", nil)
	_, all := decode[page[subscriber]](t, rec)
	require.Len(t, all.Docs, 2)
	for _, doc := range all.Docs {
		assert.Equal(t, doc.Subscriber.ID == backID, doc.ChannelSubscribesBack)
	}
}

func TestCommentPermissions(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup("owner")
	_, other := env.signup("other")
	videoID := env.publish(owner, "commented")

	rec := env.do(http.MethodPost, "/api/v1/comments/"+videoID.String(), other, map[string]string{"content": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/comments/"+videoID.String(), other, map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	_, comment := decode[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)

	rec = env.do(http.MethodPatch, "/api/v1/comments/c/"+comment.ID.String(), owner, map[string]string{"content": "edited"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/comments/"+videoID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, comments := decode[page[struct {
		Content string `json:"content"`
	}]](t, rec)
	require.Len(t, comments.Docs, 1)
	assert.Equal(t, "nice", comments.Docs[0].Content)
}

func TestPlaylistRoutes(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup("curator")
	videoID := env.publish(token, "keeper")

	rec := env.do(http.MethodPost, "/api/v1/playlists", token, map[string]string{"name": "mix", "description": "weekend"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, pl := decode[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)

	for i := 0; i < 2; i++ {
		rec = env.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlists/add/%s/%s", videoID, pl.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	_, info := decode[struct {
		TotalVideos int64 `json:"totalVideos"`
	}](t, rec)
	assert.EqualValues(t, 1, info.TotalVideos)

	rec = env.do(http.MethodGet, "/api/v1/playlists/user/"+userID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, lists := decode[[]struct {
		Name string `json:"name"`
	}](t, rec)
	require.Len(t, lists, 1)
	assert.Equal(t, "mix", lists[0].Name)

	rec = env.do(http.MethodGet, "/api/v1/playlists/"+pl.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, detailed := decode[struct {
		Videos []struct {
			ID uuid.UUID `json:"id"`
		} `json:"videos"`
	}](t, rec)
	require.Len(t, detailed.Videos, 1)
	assert.Equal(t, videoID, detailed.Videos[0].ID)
}

func TestDashboardRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup("creator")
	env.publish(token, "one")

	rec := env.do(http.MethodGet, "/api/v1/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, stats := decode[struct {
		TotalVideos int64 `json:"totalVideos"`
	}](t, rec)
	assert.EqualValues(t, 1, stats.TotalVideos)
}
