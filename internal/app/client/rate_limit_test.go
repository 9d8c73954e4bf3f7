package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backupAPI "mindfulsteps/internal/app/server/api/http/backup"
	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/middleware/ratelimit"
	walklogAPI "mindfulsteps/internal/app/server/api/http/walklog"
	"mindfulsteps/internal/domain/backup"
	"mindfulsteps/internal/domain/walklog"
)

type staticSessions struct{}

func (staticSessions) Validate(context.Context, string) (int, error) { return 1, nil }

type blobSink struct {
	puts atomic.Int32
}

func (b *blobSink) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	b.puts.Add(1)
	return "https://blobs.example.com/" + key, nil
}

// walkRecorder хранит прогулки по владельцу
type walkRecorder struct {
	mu   sync.Mutex
	logs map[string]map[string]walklog.WalkLog
}

func (w *walkRecorder) List(_ context.Context, owner string) ([]walklog.WalkLog, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]walklog.WalkLog, 0, len(w.logs[owner]))
	for _, l := range w.logs[owner] {
		out = append(out, l)
	}
	return out, nil
}

func (w *walkRecorder) Save(_ context.Context, owner string, l walklog.WalkLog) (walklog.WalkLog, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.logs[owner] == nil {
		w.logs[owner] = map[string]walklog.WalkLog{}
	}
	w.logs[owner][l.ID] = l
	return l, nil
}

func (w *walkRecorder) Delete(_ context.Context, owner, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.logs[owner], id)
	return nil
}

func (w *walkRecorder) count(owner string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.logs[owner])
}

// newLimitedServer поднимает API прогулок и резервных копий за identity и ratelimit
func newLimitedServer(t *testing.T, rps float64, burst int) (*httptest.Server, *walkRecorder, *atomic.Int32) {
	t.Helper()
	log := discardLogger()

	mux := chi.NewMux()
	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})

	api := humachi.New(mux, huma.DefaultConfig("Mindful Steps API", "1.0.0"))
	limiter := ratelimit.New(rps, burst, log)
	mws := func() huma.Middlewares {
		return huma.Middlewares{identity.New(staticSessions{}, log).Middleware(), limiter.Middleware()}
	}

	walks := &walkRecorder{logs: map[string]map[string]walklog.WalkLog{}}
	walklogAPI.NewHandler(walks, log, mws()).SetupRoutes(api)

	blobs := &blobSink{}
	backupAPI.NewHandler(backup.NewService(blobs, log), log, mws()).SetupRoutes(api)

	var throttled atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		mux.ServeHTTP(rec, r)
		if rec.status == http.StatusTooManyRequests {
			throttled.Add(1)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, walks, &throttled
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func localWalks(n int) []walklog.WalkLog {
	logs := make([]walklog.WalkLog, 0, n)
	for i := 0; i < n; i++ {
		end := int64(1709280000000 + i*3600000 + 1800000)
		logs = append(logs, walklog.WalkLog{
			ID:        fmt.Sprintf("walk-%02d", i),
			Date:      "2024-03-01",
			StartTime: int64(1709280000000 + i*3600000),
			EndTime:   &end,
			Steps:     1000 + i,
			Duration:  30,
		})
	}
	return logs
}

func TestSyncService_MigrateLocal_PacedUnderServerLimit(t *testing.T) {
	ctx := context.Background()
	srv, walks, throttled := newLimitedServer(t, 5, 10)

	store := NewMemoryStore(discardLogger())
	require.NoError(t, store.Set(ctx, KeyWalkLogs, localWalks(15)))

	remote := NewRemoteClient(srv.URL, "device_paced_1", 5*time.Second, discardLogger())
	remote.SetToken("tok")
	svc := NewSyncService(remote, store, "device_paced_1", discardLogger())

	res := svc.MigrateLocal(ctx)

	require.Equal(t, StatusOK, res.Status, res.Err)
	assert.Equal(t, 15, res.Value.WalkLogs)
	assert.NotEmpty(t, res.Value.BackupKey)
	assert.Equal(t, 15, walks.count("user:1"))
	assert.Zero(t, throttled.Load())

	found, err := store.Get(ctx, KeyWalkLogs, &[]walklog.WalkLog{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSyncService_MigrateLocal_RetriesAfterTooManyRequests(t *testing.T) {
	ctx := context.Background()
	srv, walks, throttled := newLimitedServer(t, 5, 10)

	store := NewMemoryStore(discardLogger())
	require.NoError(t, store.Set(ctx, KeyWalkLogs, localWalks(15)))

	// без собственного лимита клиент упирается в 429 и ждет Retry-After
	remote := NewRemoteClient(srv.URL, "device_burst_1", 5*time.Second, discardLogger(), WithRateLimit(0, 0))
	remote.SetToken("tok")
	svc := NewSyncService(remote, store, "device_burst_1", discardLogger())

	res := svc.MigrateLocal(ctx)

	require.Equal(t, StatusOK, res.Status, res.Err)
	assert.Equal(t, 15, res.Value.WalkLogs)
	assert.Equal(t, 15, walks.count("user:1"))
	assert.Positive(t, throttled.Load())
}

func TestSyncService_ReplayQueue_DrainsUnderServerLimit(t *testing.T) {
	ctx := context.Background()
	srv, walks, _ := newLimitedServer(t, 5, 10)

	store := NewMemoryStore(discardLogger())
	remote := NewRemoteClient(srv.URL, "device_replay_1", 5*time.Second, discardLogger())
	svc := NewSyncService(remote, store, "device_replay_1", discardLogger())

	for _, l := range localWalks(14) {
		_, err := svc.queue.Enqueue(ctx, KindWalkLog, l)
		require.NoError(t, err)
	}

	res := svc.ReplayQueue(ctx)

	require.Equal(t, StatusOK, res.Status, res.Err)
	assert.Equal(t, ReplayReport{Replayed: 14}, res.Value)
	assert.Equal(t, 14, walks.count("device_replay_1"))
	assert.Zero(t, svc.PendingCount(ctx).Value)
}

func TestRemoteClient_RetryAfter(t *testing.T) {
	var calls atomic.Int32
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			writeEnvelope(w, http.StatusTooManyRequests, nil, "too many requests")
			return
		}
		writeEnvelope(w, http.StatusOK, nil, "")
	})

	require.NoError(t, remote.DeleteWalkLog(context.Background(), "w1"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRemoteClient_RetryAfter_GivesUp(t *testing.T) {
	var calls atomic.Int32
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		writeEnvelope(w, http.StatusTooManyRequests, nil, "too many requests")
	})

	err := remote.DeleteWalkLog(context.Background(), "w1")

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusTooManyRequests, re.Status)
	assert.Equal(t, int32(maxRetries+1), calls.Load())
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, time.Second, retryAfter(""))
	assert.Equal(t, time.Second, retryAfter("soon"))
	assert.Equal(t, 2*time.Second, retryAfter("2"))
	assert.Equal(t, maxRetryAfter, retryAfter("3600"))
}
