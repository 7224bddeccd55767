package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"ugoness/internal/adapters/http/middleware"
	sessionStore "ugoness/internal/adapters/storage/session"
	"ugoness/internal/application/orchestrators"
	"ugoness/internal/application/playback"
	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/training"
)

// handleWatch renders the playback screen and (re)seeds the operator's
// playback session from the videos= parameter. A reload rebuilds the exact
// queue the URL describes, discarding any in-page edits.
func handleWatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	userIDs, videoIDs, err := wizardSelections(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(userIDs) == 0 || len(videoIDs) == 0 {
		http.Redirect(w, r, training.StepURL(training.StepParticipants, userIDs, videoIDs), http.StatusSeeOther)
		return
	}

	loaded, err := orchestrators.ExecuteLoadCatalog(r.Context(),
		orchestrators.LoadCatalogInput{Token: sess.APIToken},
		orchestrators.LoadCatalogDeps{Catalog: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}
	resolved, err := orchestrators.ExecuteResolveParticipants(r.Context(),
		orchestrators.ResolveParticipantsInput{Token: sess.APIToken, UserIDs: userIDs},
		orchestrators.ResolveParticipantsDeps{Directory: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}

	ps := playbackSessions.Get(sess.ID)
	skipped := ps.Seed(videoIDs, catalog.ByID(loaded.Videos))
	snap := ps.Snapshot()

	renderTemplate(w, r, "training_watch.html", map[string]any{
		"Snapshot":     snap,
		"Participants": resolved.Roster.Entries(),
		"MissingUsers": resolved.Missing,
		"SkippedIDs":   skipped,
		"Users":        training.EncodeIDs(userIDs),
		"Videos":       training.EncodeIDs(videoIDs),
		"BackURL":      training.StepURL(training.StepVideos, userIDs, videoIDs),
		"FinishURL":    training.PathWatch + "/finish",
		"CSRFToken":    csrf.Token(r),
	})
}

// watchSession resolves the operator's playback session for a JSON command.
func watchSession(w http.ResponseWriter, r *http.Request) (*playback.Session, sessionStore.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return nil, sessionStore.Session{}, false
	}
	return playbackSessions.Get(sess.ID), sess, true
}

// handleWatchState returns the current playback snapshot.
func handleWatchState(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchQueue appends a video to the live playlist right after the
// cursor.
func handleWatchQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	var body struct {
		VideoID int64 `json:"videoId"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequestJSON(w, "malformed request body")
		return
	}
	if !ps.Enqueue(body.VideoID) {
		badRequestJSON(w, "unknown video")
		return
	}
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchSelect jumps playback to a playlist position.
func handleWatchSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Position int `json:"position"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequestJSON(w, "malformed request body")
		return
	}
	if err := ps.Select(body.Position); err != nil {
		badRequestJSON(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchRemove deletes a playlist entry.
func handleWatchRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Position int `json:"position"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequestJSON(w, "malformed request body")
		return
	}
	if err := ps.Remove(body.Position); err != nil {
		badRequestJSON(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchPause records that the operator paused the player.
func handleWatchPause(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	ps.Pause()
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchEnded records that the current video finished playing.
func handleWatchEnded(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	ps.OnEnded()
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchError records a player error reported by the browser.
func handleWatchError(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ps, _, ok := watchSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequestJSON(w, "malformed request body")
		return
	}
	if body.Message == "" {
		body.Message = "playback failed"
	}
	ps.SetPlaybackError(body.Message)
	writeJSON(w, http.StatusOK, ps.Snapshot())
}

// handleWatchFinish ends playback: it creates the training history, records
// one viewing row per queued entry (repeats included), and moves the
// operator to the rating form.
func handleWatchFinish(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	userIDs, err := training.DecodeIDs(r.FormValue("users"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ps := playbackSessions.Get(sess.ID)
	epoch := ps.Epoch()
	result, err := orchestrators.ExecuteFinishWorkout(r.Context(), orchestrators.FinishWorkoutInput{
		Token:            sess.APIToken,
		ParticipantIDs:   userIDs,
		PlaylistVideoIDs: ps.VideoIDs(),
	}, orchestrators.FinishWorkoutDeps{History: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}
	ps.SetHistoryID(epoch, result.TrainingHistoryID)

	http.Redirect(w, r, training.StepURL(training.StepForm, userIDs, nil), http.StatusSeeOther)
}
