package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube-go/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndex = "test-videos"

// fakeES 只实现测试用到的几个接口
type fakeES struct {
	mu      sync.Mutex
	docs    map[string]VideoDoc
	created bool
	hits    []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodHead && path == testIndex:
		if f.created {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && path == testIndex:
		f.created = true
		io.WriteString(w, `{"acknowledged":true}`)
	case r.Method == http.MethodPut && strings.HasPrefix(path, testIndex+"/_doc/"):
		var doc VideoDoc
		_ = json.NewDecoder(r.Body).Decode(&doc)
		f.docs[strings.TrimPrefix(path, testIndex+"/_doc/")] = doc
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, testIndex+"/_doc/"):
		id := strings.TrimPrefix(path, testIndex+"/_doc/")
		if _, ok := f.docs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, id)
		io.WriteString(w, `{"result":"deleted"}`)
	case path == testIndex+"/_search":
		hits := make([]map[string]string, 0, len(f.hits))
		for _, id := range f.hits {
			hits = append(hits, map[string]string{"_id": id})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"hits": map[string]interface{}{"hits": hits}})
	case path == "_bulk":
		body, _ := io.ReadAll(r.Body)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		items := make([]map[string]interface{}, 0, len(lines)/2)
		for i := 0; i+1 < len(lines); i += 2 {
			items = append(items, map[string]interface{}{"index": map[string]int{"status": 201}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": false, "items": items})
	default:
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeES) {
	t.Helper()
	fake := &fakeES{docs: map[string]VideoDoc{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return New(es, testIndex), fake
}

func TestEnsureVideosIndex(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.EnsureVideosIndex(ctx))
	assert.True(t, fake.created)
	// 第二次直接返回
	require.NoError(t, c.EnsureVideosIndex(ctx))
}

func TestIndexAndRemoveVideo(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	v := &model.Video{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Title:       "Go 并发",
		Description: "channels",
		IsPublished: true,
		Views:       12,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, c.IndexVideo(ctx, v))

	doc, ok := fake.docs[v.ID.String()]
	require.True(t, ok)
	assert.Equal(t, v.OwnerID.String(), doc.OwnerID)
	assert.Equal(t, "Go 并发", doc.Title)
	assert.True(t, doc.IsPublished)
	assert.Equal(t, "2026-01-02T03:04:05Z", doc.CreatedAt)

	require.NoError(t, c.RemoveVideo(ctx, v.ID))
	assert.Empty(t, fake.docs)
	// 不存在的文档
	require.NoError(t, c.RemoveVideo(ctx, v.ID))
}

func TestSearchVideoIDsSkipsForeignIDs(t *testing.T) {
	c, fake := newTestClient(t)
	a, b := uuid.New(), uuid.New()
	fake.hits = []string{a.String(), "legacy-42", b.String()}

	ids, err := c.SearchVideoIDs(context.Background(), "go", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestBulkIndex(t *testing.T) {
	c, _ := newTestClient(t)
	videos := []model.Video{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

	success, failed, err := c.BulkIndex(context.Background(), videos)
	require.NoError(t, err)
	assert.Equal(t, 3, success)
	assert.Zero(t, failed)

	success, failed, err = c.BulkIndex(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, success+failed)
}

func TestNormalizeHosts(t *testing.T) {
	assert.Equal(t,
		[]string{"http://127.0.0.1:9200", "https://es.internal:9200"},
		normalizeHosts([]string{" 127.0.0.1:9200 ", "", "https://es.internal:9200"}),
	)
}

func TestSearchBody(t *testing.T) {
	raw, err := searchBody("cats", 25)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.EqualValues(t, 25, body["size"])
	assert.Contains(t, string(raw), `"title^3"`)
}
