package playlist

import (
	"errors"

	"ugoness/internal/domain/catalog"
)

// State describes what the player is doing with the current entry.
type State string

const (
	// StateIdle means the playlist has nothing loaded.
	StateIdle State = "idle"
	// StatePlaying means the entry at the cursor is streaming.
	StatePlaying State = "playing"
	// StatePaused means an entry is loaded but not streaming.
	StatePaused State = "paused"
	// StateEnded means the last entry finished and no auto-advance is possible.
	StateEnded State = "ended"
)

// NoCursor is the cursor value when the playlist is empty.
const NoCursor = -1

// Playlist is the ordered watch queue for one session plus the playback
// cursor. The same video may appear at several positions; order determines
// playback sequence.
//
// INVARIANT: 0 <= cursor < len(entries) whenever the playlist is non-empty;
// cursor == NoCursor when it is empty.
type Playlist struct {
	entries []catalog.Video
	cursor  int
	state   State
	loaded  catalog.Video // the video handed to the player; zero when none
	lastErr string        // last playback error, cleared on every load
}

// New returns an empty playlist.
func New() *Playlist {
	return &Playlist{cursor: NoCursor, state: StateIdle}
}

// Seed builds the queue from ordered video IDs carried over from the video
// selection step. IDs missing from the catalog are skipped and returned so
// the caller can surface them per-item. If anything was resolved, the first
// entry is loaded and autoplays.
// PRE: byID indexes the full catalog
// POST: cursor == 0 and state == StatePlaying if any ID resolved
func (p *Playlist) Seed(ids []int64, byID map[int64]catalog.Video) (skipped []int64) {
	p.entries = nil
	p.cursor = NoCursor
	p.state = StateIdle
	p.loaded = catalog.Video{}
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		p.entries = append(p.entries, v)
	}
	if len(p.entries) > 0 {
		p.load(0)
	}
	return skipped
}

// Select jumps to the entry at pos. If that entry's video is the one already
// loaded, playback resumes in place; otherwise the entry is loaded fresh.
// The cursor moves to pos either way.
// POST: cursor == pos, state == StatePlaying, lastErr cleared
func (p *Playlist) Select(pos int) error {
	if pos < 0 || pos >= len(p.entries) {
		return errors.New("playlist position out of range")
	}
	if p.entries[pos].ID == p.loaded.ID && p.loaded.ID != 0 {
		p.cursor = pos
		p.state = StatePlaying
		p.lastErr = ""
		return nil
	}
	p.load(pos)
	return nil
}

// Enqueue inserts the video immediately after the cursor so it plays next,
// not last. If the player is not currently streaming, the new entry is
// loaded and autoplays.
// POST: invariant holds; on an empty playlist the video becomes entry 0
func (p *Playlist) Enqueue(v catalog.Video) {
	if len(p.entries) == 0 {
		p.entries = []catalog.Video{v}
		p.load(0)
		return
	}
	at := p.cursor + 1
	p.entries = append(p.entries, catalog.Video{})
	copy(p.entries[at+1:], p.entries[at:])
	p.entries[at] = v
	if p.state != StatePlaying {
		p.load(at)
	}
}

// Remove deletes the entry at pos and keeps the cursor consistent:
//   - removing the playing entry with a later entry available loads that
//     later entry and leaves the cursor at the same index;
//   - removing the playing entry when it is last stops playback and leaves
//     the cursor on the remaining last entry (NoCursor if none remain);
//   - removing an earlier entry shifts the cursor down by one;
//   - removing a later entry changes nothing.
func (p *Playlist) Remove(pos int) error {
	if pos < 0 || pos >= len(p.entries) {
		return errors.New("playlist position out of range")
	}
	switch {
	case pos == p.cursor:
		if pos+1 < len(p.entries) {
			p.load(pos + 1)
			p.cursor = pos
		} else {
			p.cursor = len(p.entries) - 2
			p.loaded = catalog.Video{}
			p.state = StatePaused
		}
	case pos < p.cursor:
		p.cursor--
	}
	p.entries = append(p.entries[:pos], p.entries[pos+1:]...)
	if len(p.entries) == 0 {
		p.cursor = NoCursor
		p.state = StateIdle
		p.loaded = catalog.Video{}
	}
	return nil
}

// OnEnded handles natural end of the current video: advance and play the
// next entry, or enter StateEnded at the end of the queue. The playlist
// itself is never mutated.
func (p *Playlist) OnEnded() {
	if p.cursor == NoCursor {
		return
	}
	if p.cursor < len(p.entries)-1 {
		p.load(p.cursor + 1)
		return
	}
	p.state = StateEnded
}

// Pause marks the loaded entry as not streaming.
func (p *Playlist) Pause() {
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// SetError records a playback error for the operator. The error is sticky
// until the next load; it never tears down the playlist.
func (p *Playlist) SetError(msg string) {
	p.lastErr = msg
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// load replaces the player's video and clears any in-flight error.
func (p *Playlist) load(pos int) {
	p.cursor = pos
	p.loaded = p.entries[pos]
	p.state = StatePlaying
	p.lastErr = ""
}

// Current returns the loaded video, if any.
func (p *Playlist) Current() (catalog.Video, bool) {
	if p.loaded.ID == 0 {
		return catalog.Video{}, false
	}
	return p.loaded, true
}

// Cursor returns the current playback position, NoCursor when empty.
func (p *Playlist) Cursor() int { return p.cursor }

// State returns the player state.
func (p *Playlist) State() State { return p.state }

// Err returns the sticky playback error, empty when none.
func (p *Playlist) Err() string { return p.lastErr }

// Len returns the number of queued entries.
func (p *Playlist) Len() int { return len(p.entries) }

// Entries returns a copy of the queue in play order.
func (p *Playlist) Entries() []catalog.Video {
	out := make([]catalog.Video, len(p.entries))
	copy(out, p.entries)
	return out
}

// VideoIDs returns one ID per queued entry, repeats included, in play
// order. This is the multiplicity the viewing history must reproduce.
func (p *Playlist) VideoIDs() []int64 {
	ids := make([]int64, len(p.entries))
	for i, v := range p.entries {
		ids[i] = v.ID
	}
	return ids
}
