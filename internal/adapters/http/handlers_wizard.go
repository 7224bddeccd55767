package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"ugoness/internal/adapters/http/middleware"
	sessionStore "ugoness/internal/adapters/storage/session"
	"ugoness/internal/application/listutil"
	"ugoness/internal/application/projections"
	"ugoness/internal/domain/training"
)

// requireSession resolves the operator session or redirects to login.
func requireSession(w http.ResponseWriter, r *http.Request) (sessionStore.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
	return sess, ok
}

// wizardSelections parses the users= and videos= csv parameters that carry
// the whole wizard state between steps.
func wizardSelections(r *http.Request) (userIDs, videoIDs []int64, err error) {
	userIDs, err = training.DecodeIDs(r.URL.Query().Get("users"))
	if err != nil {
		return nil, nil, err
	}
	videoIDs, err = training.DecodeIDs(r.URL.Query().Get("videos"))
	if err != nil {
		return nil, nil, err
	}
	return userIDs, videoIDs, nil
}

// handleParticipantsStep renders the participant selection screen.
func handleParticipantsStep(w http.ResponseWriter, r *http.Request) {
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

	query := projections.GetParticipantChooserQuery{
		Token:       sess.APIToken,
		Search:      r.URL.Query().Get("q"),
		SelectedIDs: userIDs,
		Page:        listutil.ParsePageParams(r.URL.Query(), listutil.DefaultPerPage),
	}
	result, err := projections.QueryGetParticipantChooser(r.Context(), query,
		projections.GetParticipantChooserDeps{Directory: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "training_participants.html", map[string]any{
		"Selected":   result.Selected,
		"Candidates": result.Candidates,
		"Missing":    result.Missing,
		"PageInfo":   result.PageInfo,
		"Search":     query.Search,
		"Users":      training.EncodeIDs(userIDs),
		"Videos":     training.EncodeIDs(videoIDs),
		"NextURL":    training.StepURL(training.StepVideos, userIDs, videoIDs),
		"CSRFToken":  csrf.Token(r),
	})
}

// handleParticipantAdd adds one participant to the roster and redirects
// back to the selection screen with the updated csv.
func handleParticipantAdd(w http.ResponseWriter, r *http.Request) {
	mutateSelection(w, r, training.StepParticipants, func(userIDs, videoIDs []int64, id int64) ([]int64, []int64) {
		for _, existing := range userIDs {
			if existing == id {
				return userIDs, videoIDs // roster is a set
			}
		}
		return append(userIDs, id), videoIDs
	})
}

// handleParticipantRemove removes a participant from the roster.
func handleParticipantRemove(w http.ResponseWriter, r *http.Request) {
	mutateSelection(w, r, training.StepParticipants, func(userIDs, videoIDs []int64, id int64) ([]int64, []int64) {
		kept := userIDs[:0]
		for _, existing := range userIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		return kept, videoIDs
	})
}

// handleVideosStep renders the video selection screen.
func handleVideosStep(w http.ResponseWriter, r *http.Request) {
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

	tagID, _ := strconv.ParseInt(r.URL.Query().Get("tag"), 10, 64)
	query := projections.GetVideoChooserQuery{
		Token:       sess.APIToken,
		Search:      r.URL.Query().Get("q"),
		TagID:       tagID,
		SelectedIDs: videoIDs,
		Page:        listutil.ParsePageParams(r.URL.Query(), listutil.DefaultPerPage),
	}
	result, err := projections.QueryGetVideoChooser(r.Context(), query,
		projections.GetVideoChooserDeps{Catalog: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "training_videos.html", map[string]any{
		"Selected":   result.Selected,
		"Candidates": result.Candidates,
		"Tags":       result.Tags,
		"Missing":    result.Missing,
		"PageInfo":   result.PageInfo,
		"Search":     query.Search,
		"TagID":      tagID,
		"Users":      training.EncodeIDs(userIDs),
		"Videos":     training.EncodeIDs(videoIDs),
		"BackURL":    training.StepURL(training.StepParticipants, userIDs, videoIDs),
		"NextURL":    training.StepURL(training.StepWatch, userIDs, videoIDs),
		"CSRFToken":  csrf.Token(r),
	})
}

// handleVideoAdd appends one video to the planned playlist. Repeats are
// allowed: queueing the same video twice plays it twice.
func handleVideoAdd(w http.ResponseWriter, r *http.Request) {
	mutateSelection(w, r, training.StepVideos, func(userIDs, videoIDs []int64, id int64) ([]int64, []int64) {
		return userIDs, append(videoIDs, id)
	})
}

// handleVideoRemove drops the playlist entry at the posted position, so
// removing one repeat leaves the others queued.
func handleVideoRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
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
	videoIDs, err := training.DecodeIDs(r.FormValue("videos"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pos, err := strconv.Atoi(r.FormValue("pos"))
	if err != nil || pos < 0 || pos >= len(videoIDs) {
		http.Error(w, "position out of range", http.StatusBadRequest)
		return
	}

	videoIDs = append(videoIDs[:pos], videoIDs[pos+1:]...)
	http.Redirect(w, r, training.StepURL(training.StepVideos, userIDs, videoIDs), http.StatusSeeOther)
}

// mutateSelection is the shared POST-redirect-GET flow for add/remove
// actions: parse the posted csv state, apply the mutation, and redirect to
// the step with the new csv in the URL.
func mutateSelection(w http.ResponseWriter, r *http.Request, step training.Step, apply func(userIDs, videoIDs []int64, id int64) ([]int64, []int64)) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
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
	videoIDs, err := training.DecodeIDs(r.FormValue("videos"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "missing or malformed id", http.StatusBadRequest)
		return
	}

	userIDs, videoIDs = apply(userIDs, videoIDs, id)
	http.Redirect(w, r, training.StepURL(step, userIDs, videoIDs), http.StatusSeeOther)
}
