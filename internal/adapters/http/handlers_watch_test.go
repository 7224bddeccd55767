package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ugoness/internal/adapters/http/middleware"
	sessionStore "ugoness/internal/adapters/storage/session"
	"ugoness/internal/application/playback"
	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/playlist"
)

func setupPlayback(t *testing.T) *playback.Session {
	t.Helper()
	playbackSessions = playback.NewManager()
	ps := playbackSessions.Get("sid-1")
	ps.Seed([]int64{10, 20}, map[int64]catalog.Video{
		10: {ID: 10, Title: "Seated Stretch"},
		20: {ID: 20, Title: "Ball Toss"},
		30: {ID: 30, Title: "Cool Down"},
	})
	return ps
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		if strings.HasPrefix(body, "{") {
			r.Header.Set("Content-Type", "application/json")
		} else {
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	sess := sessionStore.Session{ID: "sid-1", Email: "m@ugoness.jp", APIToken: "tok", CreatedAt: time.Now()}
	return r.WithContext(middleware.ContextWithSession(r.Context(), sess))
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) playback.Snapshot {
	t.Helper()
	var snap playback.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	return snap
}

func TestHandleWatchQueueInsertsAfterCursor(t *testing.T) {
	setupPlayback(t)

	rec := httptest.NewRecorder()
	handleWatchQueue(rec, authedRequest("POST", "/clients/training/watch/queue", `{"videoId":30}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	snap := decodeSnapshot(t, rec)
	if len(snap.Entries) != 3 {
		t.Fatalf("entries = %+v, want 3", snap.Entries)
	}
	if snap.Entries[1].VideoID != 30 {
		t.Fatalf("entry 1 = %+v, want video 30 queued after cursor", snap.Entries[1])
	}
}

func TestHandleWatchQueueUnknownVideo(t *testing.T) {
	setupPlayback(t)

	rec := httptest.NewRecorder()
	handleWatchQueue(rec, authedRequest("POST", "/clients/training/watch/queue", `{"videoId":999}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleWatchSelectAndEnded(t *testing.T) {
	setupPlayback(t)

	rec := httptest.NewRecorder()
	handleWatchSelect(rec, authedRequest("POST", "/clients/training/watch/select", `{"position":1}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d: %s", rec.Code, rec.Body.String())
	}
	if snap := decodeSnapshot(t, rec); snap.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", snap.Cursor)
	}

	rec = httptest.NewRecorder()
	handleWatchEnded(rec, authedRequest("POST", "/clients/training/watch/ended", ""))
	if snap := decodeSnapshot(t, rec); snap.State != playlist.StateEnded {
		t.Fatalf("state after last video ends = %q, want ended", snap.State)
	}
}

func TestHandleWatchRemoveOutOfRange(t *testing.T) {
	setupPlayback(t)

	rec := httptest.NewRecorder()
	handleWatchRemove(rec, authedRequest("POST", "/clients/training/watch/remove", `{"position":9}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleWatchStateRequiresLogin(t *testing.T) {
	setupPlayback(t)

	rec := httptest.NewRecorder()
	handleWatchState(rec, httptest.NewRequest("GET", "/clients/training/watch/state", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandleParticipantAddRedirectsWithUpdatedList(t *testing.T) {
	rec := httptest.NewRecorder()
	handleParticipantAdd(rec, authedRequest("POST", "/clients/training/participants/add", "id=3&users=1,2&videos=10"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "users=1%2C2%2C3") {
		t.Fatalf("Location = %q, want users csv extended with 3", loc)
	}
	if !strings.Contains(loc, "videos=10") {
		t.Fatalf("Location = %q, want videos csv preserved", loc)
	}
}

func TestHandleParticipantAddIgnoresDuplicate(t *testing.T) {
	rec := httptest.NewRecorder()
	handleParticipantAdd(rec, authedRequest("POST", "/clients/training/participants/add", "id=2&users=1,2&videos="))

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "users=1%2C2") || strings.Contains(loc, "users=1%2C2%2C2") {
		t.Fatalf("Location = %q, want roster unchanged", loc)
	}
}

func TestHandleVideoRemoveDropsOnePosition(t *testing.T) {
	rec := httptest.NewRecorder()
	handleVideoRemove(rec, authedRequest("POST", "/clients/training/videos/remove", "pos=1&users=1&videos=10,20,10"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "videos=10%2C10") {
		t.Fatalf("Location = %q, want videos=10,10 after removing position 1", loc)
	}
}

func TestHandleVideoRemoveRejectsBadPosition(t *testing.T) {
	rec := httptest.NewRecorder()
	handleVideoRemove(rec, authedRequest("POST", "/clients/training/videos/remove", "pos=5&users=1&videos=10"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMalformedCSVRejected(t *testing.T) {
	rec := httptest.NewRecorder()
	handleParticipantAdd(rec, authedRequest("POST", "/clients/training/participants/add", "id=3&users=1,abc&videos="))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
