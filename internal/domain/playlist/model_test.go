package playlist_test

import (
	"testing"

	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/playlist"
)

func video(id int64) catalog.Video {
	return catalog.Video{ID: id, Title: "v", VideoURL: "https://cdn/v"}
}

func seeded(t *testing.T, ids ...int64) *playlist.Playlist {
	t.Helper()
	byID := map[int64]catalog.Video{}
	for _, id := range ids {
		byID[id] = video(id)
	}
	p := playlist.New()
	if skipped := p.Seed(ids, byID); len(skipped) != 0 {
		t.Fatalf("unexpected skipped IDs %v", skipped)
	}
	return p
}

// checkInvariant asserts the cursor bound: within range when non-empty,
// NoCursor when empty.
func checkInvariant(t *testing.T, p *playlist.Playlist) {
	t.Helper()
	if p.Len() == 0 {
		if p.Cursor() != playlist.NoCursor {
			t.Fatalf("empty playlist must have cursor=NoCursor, got %d", p.Cursor())
		}
		return
	}
	if p.Cursor() < 0 || p.Cursor() >= p.Len() {
		t.Fatalf("cursor %d out of range for length %d", p.Cursor(), p.Len())
	}
}

// TestSeedAutoplaysFirst tests that seeding loads entry 0 and autoplays.
func TestSeedAutoplaysFirst(t *testing.T) {
	p := seeded(t, 10, 20)
	if p.Cursor() != 0 {
		t.Errorf("expected cursor 0 after seed, got %d", p.Cursor())
	}
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected StatePlaying after seed, got %s", p.State())
	}
	cur, ok := p.Current()
	if !ok || cur.ID != 10 {
		t.Errorf("expected first video loaded, got %v ok=%v", cur.ID, ok)
	}
}

// TestSeedSkipsUnknownIDs tests stale-reference tolerance during seeding.
func TestSeedSkipsUnknownIDs(t *testing.T) {
	byID := map[int64]catalog.Video{10: video(10)}
	p := playlist.New()
	skipped := p.Seed([]int64{10, 99, 10}, byID)
	if len(skipped) != 1 || skipped[0] != 99 {
		t.Errorf("expected [99] skipped, got %v", skipped)
	}
	if p.Len() != 2 {
		t.Errorf("expected repeats of a known ID to be kept, got length %d", p.Len())
	}
	checkInvariant(t, p)
}

// TestSeedEmpty tests that an empty seed leaves the playlist inert.
func TestSeedEmpty(t *testing.T) {
	p := playlist.New()
	p.Seed(nil, nil)
	if p.Cursor() != playlist.NoCursor || p.State() != playlist.StateIdle {
		t.Errorf("expected inert playlist, got cursor=%d state=%s", p.Cursor(), p.State())
	}
	if _, ok := p.Current(); ok {
		t.Error("expected no current video on empty playlist")
	}
}

// TestRemoveBeforeCursor tests that removing an earlier entry shifts the
// cursor down without changing what is playing: [A,B,C] cursor=1,
// remove(0) => cursor=0, B still playing.
func TestRemoveBeforeCursor(t *testing.T) {
	p := seeded(t, 1, 2, 3)
	if err := p.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Remove(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 2 {
		t.Errorf("expected video 2 to remain playing, got %d", cur.ID)
	}
	checkInvariant(t, p)
}

// TestRemovePlayingWithLaterEntry tests that removing the playing entry
// slides the next one into its slot: [A,B,C] cursor=1, remove(1) =>
// cursor=1, C playing.
func TestRemovePlayingWithLaterEntry(t *testing.T) {
	p := seeded(t, 1, 2, 3)
	if err := p.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor() != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 3 {
		t.Errorf("expected video 3 to be playing, got %d", cur.ID)
	}
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected StatePlaying, got %s", p.State())
	}
	checkInvariant(t, p)
}

// TestRemovePlayingLastEntry tests the resolved open question: removing
// the last entry while it plays stops playback and parks the cursor on the
// remaining last entry. [A,B] cursor=1, remove(1) => cursor=0, stopped,
// nothing loaded.
func TestRemovePlayingLastEntry(t *testing.T) {
	p := seeded(t, 1, 2)
	if err := p.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", p.Cursor())
	}
	if _, ok := p.Current(); ok {
		t.Error("expected nothing loaded after removing the playing last entry")
	}
	if p.State() != playlist.StatePaused {
		t.Errorf("expected playback stopped, got %s", p.State())
	}
	checkInvariant(t, p)
}

// TestRemoveSoleEntry tests that removing the only entry empties the
// playlist and makes the cursor inert.
func TestRemoveSoleEntry(t *testing.T) {
	p := seeded(t, 1)
	if err := p.Remove(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 0 || p.Cursor() != playlist.NoCursor {
		t.Errorf("expected empty inert playlist, got len=%d cursor=%d", p.Len(), p.Cursor())
	}
	if p.State() != playlist.StateIdle {
		t.Errorf("expected StateIdle, got %s", p.State())
	}
}

// TestRemoveAfterCursor tests that removing a later entry leaves the
// cursor alone.
func TestRemoveAfterCursor(t *testing.T) {
	p := seeded(t, 1, 2, 3)
	if err := p.Remove(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 1 {
		t.Errorf("expected video 1 still playing, got %d", cur.ID)
	}
	checkInvariant(t, p)
}

// TestEnqueueInsertsUpNext tests that enqueue inserts after the cursor,
// not at the end: [A,B] cursor=0 playing, enqueue(X) => [A,X,B], A still
// playing.
func TestEnqueueInsertsUpNext(t *testing.T) {
	p := seeded(t, 1, 2)
	p.Enqueue(video(7))
	ids := p.VideoIDs()
	want := []int64{1, 7, 2}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected queue %v, got %v", want, ids)
		}
	}
	if p.Cursor() != 0 {
		t.Errorf("expected cursor to stay at 0 while playing, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 1 {
		t.Errorf("expected video 1 to keep playing, got %d", cur.ID)
	}
	checkInvariant(t, p)
}

// TestEnqueueWhilePausedAutoplays tests that enqueue during pause loads
// the new entry immediately and moves the cursor to it.
func TestEnqueueWhilePausedAutoplays(t *testing.T) {
	p := seeded(t, 1, 2)
	p.Pause()
	p.Enqueue(video(7))
	if p.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 7 {
		t.Errorf("expected enqueued video to autoplay, got %d", cur.ID)
	}
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected StatePlaying, got %s", p.State())
	}
	checkInvariant(t, p)
}

// TestEnqueueOnEmpty tests that enqueue on an empty playlist starts it.
func TestEnqueueOnEmpty(t *testing.T) {
	p := playlist.New()
	p.Enqueue(video(5))
	if p.Cursor() != 0 || p.State() != playlist.StatePlaying {
		t.Errorf("expected entry 0 playing, got cursor=%d state=%s", p.Cursor(), p.State())
	}
}

// TestSelectSameVideoResumes tests resume-in-place when the target entry
// holds the already-loaded video.
func TestSelectSameVideoResumes(t *testing.T) {
	byID := map[int64]catalog.Video{10: video(10), 20: video(20)}
	p := playlist.New()
	p.Seed([]int64{10, 20, 10}, byID)
	p.Pause()
	// position 2 holds the same video as the loaded position 0
	if err := p.Select(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", p.Cursor())
	}
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected resume to StatePlaying, got %s", p.State())
	}
}

// TestSelectOutOfRange tests bounds checking on Select and Remove.
func TestSelectOutOfRange(t *testing.T) {
	p := seeded(t, 1)
	if err := p.Select(1); err == nil {
		t.Error("expected error selecting past the end")
	}
	if err := p.Remove(-1); err == nil {
		t.Error("expected error removing a negative position")
	}
}

// TestOnEndedAdvances tests auto-advance on natural end of video.
func TestOnEndedAdvances(t *testing.T) {
	p := seeded(t, 1, 2)
	p.OnEnded()
	if p.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", p.Cursor())
	}
	cur, _ := p.Current()
	if cur.ID != 2 {
		t.Errorf("expected video 2 playing, got %d", cur.ID)
	}
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected StatePlaying, got %s", p.State())
	}
}

// TestOnEndedAtLastEntry tests the Ended transition: no mutation, no
// auto-advance.
func TestOnEndedAtLastEntry(t *testing.T) {
	p := seeded(t, 1, 2)
	p.OnEnded()
	p.OnEnded()
	if p.State() != playlist.StateEnded {
		t.Errorf("expected StateEnded, got %s", p.State())
	}
	if p.Len() != 2 || p.Cursor() != 1 {
		t.Errorf("expected playlist untouched (len=2 cursor=1), got len=%d cursor=%d", p.Len(), p.Cursor())
	}
}

// TestEnqueueAfterEnded tests that queueing from the catalog after the
// queue ran out starts the new entry.
func TestEnqueueAfterEnded(t *testing.T) {
	p := seeded(t, 1)
	p.OnEnded()
	p.Enqueue(video(9))
	if p.State() != playlist.StatePlaying {
		t.Errorf("expected new entry to play after Ended, got %s", p.State())
	}
	cur, _ := p.Current()
	if cur.ID != 9 {
		t.Errorf("expected video 9 playing, got %d", cur.ID)
	}
	if p.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", p.Cursor())
	}
	checkInvariant(t, p)
}

// TestErrorClearedOnLoad tests that playback errors are sticky until the
// next load and never tear down the queue.
func TestErrorClearedOnLoad(t *testing.T) {
	p := seeded(t, 1, 2)
	p.SetError("stream unreachable")
	if p.Err() == "" {
		t.Fatal("expected error to be recorded")
	}
	if p.Len() != 2 {
		t.Fatalf("expected playlist to survive a playback error, got len=%d", p.Len())
	}
	if err := p.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Err() != "" {
		t.Errorf("expected error cleared on load, got %q", p.Err())
	}
}

// TestCursorInvariantUnderMutationSequence drives a longer mixed sequence
// and checks the cursor bound after every step.
func TestCursorInvariantUnderMutationSequence(t *testing.T) {
	p := seeded(t, 1, 2, 3)
	steps := []func(){
		func() { p.Enqueue(video(4)) },
		func() { _ = p.Select(3) },
		func() { _ = p.Remove(0) },
		func() { p.OnEnded() },
		func() { _ = p.Remove(p.Cursor()) },
		func() { p.Enqueue(video(5)) },
		func() { _ = p.Remove(p.Len() - 1) },
		func() { _ = p.Remove(0) },
		func() { _ = p.Remove(0) },
	}
	for i, step := range steps {
		step()
		if p.Len() == 0 {
			if p.Cursor() != playlist.NoCursor {
				t.Fatalf("step %d: empty playlist with cursor %d", i, p.Cursor())
			}
			continue
		}
		if p.Cursor() < 0 || p.Cursor() >= p.Len() {
			t.Fatalf("step %d: cursor %d out of range for length %d", i, p.Cursor(), p.Len())
		}
	}
}
