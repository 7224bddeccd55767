package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"ugoness/internal/application/orchestrators"
	"ugoness/internal/domain/rating"
	"ugoness/internal/domain/training"
)

// handleFormStep handles GET (render) and POST (submit) for the
// post-session rating form.
func handleFormStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	ps := playbackSessions.Get(sess.ID)

	// The training history ID lives only in the playback session. Landing
	// here without one means playback was never finished (or the server
	// restarted), so the wizard starts over.
	historyID := ps.HistoryID()
	if historyID == 0 {
		http.Redirect(w, r, training.StepURL(training.StepParticipants, nil, nil), http.StatusSeeOther)
		return
	}

	userIDs, err := training.DecodeIDs(r.URL.Query().Get("users"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resolved, err := orchestrators.ExecuteResolveParticipants(r.Context(),
		orchestrators.ResolveParticipantsInput{Token: sess.APIToken, UserIDs: userIDs},
		orchestrators.ResolveParticipantsDeps{Directory: apiClient})
	if err != nil {
		internalError(w, err)
		return
	}
	roster := resolved.Roster.Entries()

	if r.Method == "GET" {
		renderTemplate(w, r, "training_form.html", map[string]any{
			"Participants": roster,
			"MissingUsers": resolved.Missing,
			"Users":        training.EncodeIDs(userIDs),
			"MinScore":     rating.MinScore,
			"MaxScore":     rating.MaxScore,
			"CSRFToken":    csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		sheet := rating.NewSheet()
		for _, p := range roster {
			idStr := strconv.FormatInt(p.ID, 10)
			if v, err := strconv.Atoi(r.FormValue("physical_" + idStr)); err == nil {
				if err := sheet.SetPhysical(p.ID, v); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
			if v, err := strconv.Atoi(r.FormValue("emotional_" + idStr)); err == nil {
				if err := sheet.SetEmotional(p.ID, v); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
		}

		_, err := orchestrators.ExecuteSubmitReports(r.Context(), orchestrators.SubmitReportsInput{
			Token:             sess.APIToken,
			TrainingHistoryID: historyID,
			Roster:            roster,
			Sheet:             sheet,
			VideoCount:        len(ps.VideoIDs()),
			NotifyAddress:     notifyAddress,
		}, orchestrators.SubmitReportsDeps{
			History:    apiClient,
			Journal:    stores.JournalStore,
			Email:      emailSender,
			EmailFrom:  emailFromAddress,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			var incomplete *rating.IncompleteError
			if errors.As(err, &incomplete) {
				renderTemplate(w, r, "training_form.html", map[string]any{
					"Participants": roster,
					"MissingUsers": resolved.Missing,
					"Users":        training.EncodeIDs(userIDs),
					"MinScore":     rating.MinScore,
					"MaxScore":     rating.MaxScore,
					"Error":        incomplete.Error(),
					"CSRFToken":    csrf.Token(r),
				})
				return
			}
			internalError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
