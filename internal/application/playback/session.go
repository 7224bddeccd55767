package playback

import (
	"sync"

	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/playlist"
)

// Session owns the live playlist state for one operator while the watch
// step is open. Commands are applied one at a time under the lock, so no
// two cursor mutations ever interleave regardless of how many browser
// requests arrive concurrently.
type Session struct {
	mu        sync.Mutex
	epoch     int
	list      *playlist.Playlist
	catalog   map[int64]catalog.Video
	historyID int64
}

// EntryView is one playlist row in a state snapshot.
type EntryView struct {
	Position     int    `json:"position"`
	VideoID      int64  `json:"videoId"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Playing      bool   `json:"playing"`
}

// Snapshot is the watch page's view of the playback state.
type Snapshot struct {
	Epoch   int            `json:"epoch"`
	Entries []EntryView    `json:"entries"`
	Cursor  int            `json:"cursor"`
	State   playlist.State `json:"state"`
	Current *catalog.Video `json:"current,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func newSession() *Session {
	return &Session{epoch: 1, list: playlist.New()}
}

// Seed rebuilds the playlist from the ordered video IDs in the URL and
// bumps the epoch, invalidating completions from any previous seeding.
// POST: returns IDs that no longer resolve against the catalog
func (s *Session) Seed(ids []int64, byID map[int64]catalog.Video) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.catalog = byID
	s.historyID = 0
	return s.list.Seed(ids, byID)
}

// Enqueue queues a catalog video up next. Unknown IDs are rejected by
// returning false; the playlist is untouched.
func (s *Session) Enqueue(videoID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.catalog[videoID]
	if !ok {
		return false
	}
	s.list.Enqueue(v)
	return true
}

// Select jumps to a playlist position.
func (s *Session) Select(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Select(pos)
}

// Remove deletes a playlist position.
func (s *Session) Remove(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Remove(pos)
}

// OnEnded records natural end-of-video.
func (s *Session) OnEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.OnEnded()
}

// Pause records that the operator paused the player.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Pause()
}

// SetPlaybackError records a player error reported by the browser.
func (s *Session) SetPlaybackError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.SetError(msg)
}

// VideoIDs returns one ID per queued entry, repeats included.
func (s *Session) VideoIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.VideoIDs()
}

// Epoch returns the current seeding generation.
func (s *Session) Epoch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// SetHistoryID attaches the created training history, but only if the
// session has not been reseeded since the finish transition started.
// Completions carrying a stale epoch are dropped: they belong to a
// navigation the operator already abandoned.
func (s *Session) SetHistoryID(epoch int, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.historyID = id
	return true
}

// HistoryID returns the training history created when playback finished,
// zero if playback has not been finished in this epoch.
func (s *Session) HistoryID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyID
}

// Snapshot returns a consistent view of the playback state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Epoch:  s.epoch,
		Cursor: s.list.Cursor(),
		State:  s.list.State(),
		Error:  s.list.Err(),
	}
	for i, v := range s.list.Entries() {
		snap.Entries = append(snap.Entries, EntryView{
			Position:     i,
			VideoID:      v.ID,
			Title:        v.Title,
			ThumbnailURL: v.ThumbnailURL,
			Playing:      i == snap.Cursor && snap.State == playlist.StatePlaying,
		})
	}
	if cur, ok := s.list.Current(); ok {
		snap.Current = &cur
	}
	return snap
}

// Manager hands out playback sessions keyed by the operator's dashboard
// session ID. One operator has at most one live playback session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the playback session for an operator, creating it on first use.
func (m *Manager) Get(operatorSessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[operatorSessionID]
	if !ok {
		s = newSession()
		m.sessions[operatorSessionID] = s
	}
	return s
}

// Drop discards an operator's playback session, e.g. on logout.
func (m *Manager) Drop(operatorSessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, operatorSessionID)
}
