package control

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/viewer"
	"github.com/example/alignview/internal/viewport"
)

// loop applies commands synchronously, standing in for the window event
// loop, and collects load results.
type loop struct {
	mu    sync.Mutex
	v     *viewer.Viewer
	loads chan viewer.LoadResult
}

func (l *loop) Send(ev interface{}) {
	switch e := ev.(type) {
	case Command:
		l.mu.Lock()
		e.Apply(l.v)
		l.mu.Unlock()
	case viewer.LoadResult:
		l.loads <- e
	}
}

type fixedBridge struct {
	resp settings.Response
	err  error
}

func (b fixedBridge) Fetch(context.Context) (settings.Response, error) { return b.resp, b.err }

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *loop) {
	t.Helper()
	l := &loop{loads: make(chan viewer.LoadResult, 4)}
	l.v = viewer.New(viewer.WithSender(l), viewer.WithLogger(log.New(io.Discard)), viewer.WithCanvas(400, 400))
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	srv := httptest.NewServer(New(l, opts...))
	t.Cleanup(srv.Close)
	return srv, l
}

func call(t *testing.T, srv *httptest.Server, method, path, body string, out interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return res.StatusCode
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "item.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStateStartsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	var snap viewport.Snapshot
	if code := call(t, srv, http.MethodGet, "/state", "", &snap); code != http.StatusOK {
		t.Fatalf("GET /state = %d", code)
	}
	if snap.Status != viewport.None || snap.ImagePath != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestLoadReturnsRequestID(t *testing.T) {
	srv, l := newTestServer(t)
	path := writePNG(t, 200, 100)

	var lr loadResponse
	body := `{"path":` + string(mustJSON(t, path)) + `,"transform":{"scale":2,"offset_x":5,"offset_y":6}}`
	if code := call(t, srv, http.MethodPost, "/load", body, &lr); code != http.StatusOK {
		t.Fatalf("POST /load = %d", code)
	}
	if _, err := uuid.Parse(lr.RequestID); err != nil {
		t.Fatalf("request_id %q is not a uuid: %v", lr.RequestID, err)
	}

	select {
	case res := <-l.loads:
		l.mu.Lock()
		applied := l.v.HandleLoadResult(res)
		l.mu.Unlock()
		if !applied {
			t.Fatalf("load result not applied")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for decode")
	}

	var snap viewport.Snapshot
	call(t, srv, http.MethodGet, "/state", "", &snap)
	if snap.Status != viewport.StartScale || snap.ImageW != 200 || snap.Transform.Scale != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestLoadValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	var e errorResponse
	if code := call(t, srv, http.MethodPost, "/load", `{"path":"  "}`, &e); code != http.StatusBadRequest {
		t.Fatalf("empty path = %d", code)
	}
	if code := call(t, srv, http.MethodPost, "/load", `{"path":"a.png","transform":{"scale":0}}`, &e); code != http.StatusBadRequest {
		t.Fatalf("zero scale = %d", code)
	}
	if code := call(t, srv, http.MethodPost, "/load", `{"path":"a.png","extra":1}`, &e); code != http.StatusBadRequest {
		t.Fatalf("unknown field = %d", code)
	}
}

func TestStatusAndTransformRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	var snap viewport.Snapshot

	if code := call(t, srv, http.MethodPut, "/status", `{"status":"normal"}`, &snap); code != http.StatusOK || snap.Status != viewport.Normal {
		t.Fatalf("PUT /status = %d %+v", code, snap)
	}
	var e errorResponse
	if code := call(t, srv, http.MethodPut, "/status", `{"status":"spinning"}`, &e); code != http.StatusBadRequest {
		t.Fatalf("bad status = %d", code)
	}

	if code := call(t, srv, http.MethodPost, "/transform/apply", `{"scale":1.5,"offset_x":3,"offset_y":4,"angle":0}`, &snap); code != http.StatusOK {
		t.Fatalf("apply = %d", code)
	}
	if snap.Status != viewport.Normal || snap.Transform.Scale != 1.5 {
		t.Fatalf("apply changed status or lost transform: %+v", snap)
	}

	if code := call(t, srv, http.MethodPut, "/transform", `{"scale":2,"offset_x":0,"offset_y":0,"angle":0}`, &snap); code != http.StatusOK {
		t.Fatalf("set = %d", code)
	}
	if snap.Status != viewport.StartScale || snap.Transform.Scale != 2 {
		t.Fatalf("set transform = %+v", snap)
	}
	if code := call(t, srv, http.MethodPut, "/transform", `{"scale":-1}`, &e); code != http.StatusBadRequest {
		t.Fatalf("negative scale = %d", code)
	}

	call(t, srv, http.MethodPut, "/status", `{"status":"normal"}`, &snap)
	if code := call(t, srv, http.MethodPost, "/reset", "", &snap); code != http.StatusOK || snap.Status != viewport.StartScale {
		t.Fatalf("reset = %d %+v", code, snap)
	}
	if code := call(t, srv, http.MethodPost, "/clear", "", &snap); code != http.StatusOK || snap.Status != viewport.None {
		t.Fatalf("clear = %d %+v", code, snap)
	}
}

func TestReloadSettings(t *testing.T) {
	ok := fixedBridge{resp: settings.Succeeded(settings.Placement{Scale: 1.2, OffsetX: 7, OffsetY: 8})}
	srv, _ := newTestServer(t, WithBridge(ok))
	var snap viewport.Snapshot
	if code := call(t, srv, http.MethodPost, "/settings/reload", "", &snap); code != http.StatusOK {
		t.Fatalf("reload = %d", code)
	}
	if snap.Status != viewport.StartScale || snap.Transform.OffsetX != 7 {
		t.Fatalf("settings not applied: %+v", snap)
	}

	failed := fixedBridge{resp: settings.Failed(errors.New("no row"))}
	srv, _ = newTestServer(t, WithBridge(failed))
	var e errorResponse
	if code := call(t, srv, http.MethodPost, "/settings/reload", "", &e); code != http.StatusConflict {
		t.Fatalf("unsuccessful reload = %d", code)
	}

	broken := fixedBridge{err: errors.New("connection refused")}
	srv, _ = newTestServer(t, WithBridge(broken))
	if code := call(t, srv, http.MethodPost, "/settings/reload", "", &e); code != http.StatusBadGateway {
		t.Fatalf("fetch error = %d", code)
	}
}

type deadPoster struct{}

func (deadPoster) Send(interface{}) {}

func TestDeadLoopTimesOut(t *testing.T) {
	srv := httptest.NewServer(New(deadPoster{}, WithLogger(log.New(io.Discard)), WithTimeout(20*time.Millisecond)))
	defer srv.Close()
	var e errorResponse
	if code := call(t, srv, http.MethodGet, "/state", "", &e); code != http.StatusServiceUnavailable {
		t.Fatalf("dead loop = %d", code)
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
