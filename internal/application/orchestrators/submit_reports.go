package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ugoness/internal/adapters/email"
	"ugoness/internal/domain/history"
	"ugoness/internal/domain/journal"
	"ugoness/internal/domain/participant"
	"ugoness/internal/domain/rating"
)

// ReportAPI defines the training-history operations needed to file the
// post-session reports.
type ReportAPI interface {
	CreateReport(ctx context.Context, token string, trainingHistoryID, userID int64, rec rating.Record) (int64, error)
	UpdateTrainingHistory(ctx context.Context, token string, trainingHistoryID int64, upd history.Update) error
}

// JournalStore persists the local record of completed sessions.
type JournalStore interface {
	Save(ctx context.Context, e journal.Entry) error
}

// SubmitReportsInput carries input for report submission.
type SubmitReportsInput struct {
	Token             string
	TrainingHistoryID int64
	Roster            []participant.Participant
	Sheet             *rating.Sheet
	VideoCount        int    // queued entries played this session, for the journal
	NotifyAddress     string // optional: facility address for the summary email
}

// SubmitReportsResult carries the created report IDs in roster order.
type SubmitReportsResult struct {
	ReportIDs []int64
}

// SubmitReportsDeps holds dependencies for SubmitReports.
type SubmitReportsDeps struct {
	History    ReportAPI
	Journal    JournalStore // optional: nil skips the local journal
	Email      email.Sender // optional: nil skips the summary email
	EmailFrom  string
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSubmitReports validates the rating sheet, then files one report
// per participant sequentially in roster order, then attaches the report
// IDs to the training history in a single update.
//
// Report creation is deliberately sequential so the audit trail is
// deterministic. A failure anywhere surfaces to the operator for retry;
// reports already created are not rolled back.
// PRE: every rostered participant has a complete rating (checked here,
// before any network call)
// POST: on success the training history references every report
func ExecuteSubmitReports(ctx context.Context, input SubmitReportsInput, deps SubmitReportsDeps) (SubmitReportsResult, error) {
	if input.TrainingHistoryID <= 0 {
		return SubmitReportsResult{}, errors.New("no training history for this session; finish playback first")
	}
	if input.Sheet == nil {
		return SubmitReportsResult{}, errors.New("rating sheet is required")
	}
	if err := input.Sheet.Validate(input.Roster); err != nil {
		return SubmitReportsResult{}, err
	}

	reportIDs := make([]int64, 0, len(input.Roster))
	for _, p := range input.Roster {
		rec, _ := input.Sheet.Record(p.ID)
		id, err := deps.History.CreateReport(ctx, input.Token, input.TrainingHistoryID, p.ID, rec)
		if err != nil {
			return SubmitReportsResult{}, fmt.Errorf("creating report for %s: %w", p.Name, err)
		}
		reportIDs = append(reportIDs, id)
	}

	upd := history.Update{PhysicalConditionFormIDs: reportIDs}
	if err := deps.History.UpdateTrainingHistory(ctx, input.Token, input.TrainingHistoryID, upd); err != nil {
		return SubmitReportsResult{}, fmt.Errorf("attaching reports to training history: %w", err)
	}

	slog.Info("reports_submitted",
		"training_history_id", input.TrainingHistoryID,
		"reports", len(reportIDs))

	// Local journal and summary email are conveniences: a failure here must
	// not fail a session the API has already accepted.
	if deps.Journal != nil {
		entry := journal.Entry{
			ID:                deps.GenerateID(),
			TrainingHistoryID: input.TrainingHistoryID,
			ParticipantCount:  len(input.Roster),
			VideoCount:        input.VideoCount,
			CompletedAt:       deps.Now(),
		}
		if err := deps.Journal.Save(ctx, entry); err != nil {
			slog.Warn("journal_save_failed", "training_history_id", input.TrainingHistoryID, "error", err.Error())
		}
	}
	if deps.Email != nil && input.NotifyAddress != "" {
		req := email.SendRequest{
			To:      []string{input.NotifyAddress},
			From:    deps.EmailFrom,
			Subject: fmt.Sprintf("Training session report (%d participants)", len(input.Roster)),
			HTML:    summaryHTML(input),
		}
		if _, err := deps.Email.Send(ctx, req); err != nil {
			slog.Warn("summary_email_failed", "training_history_id", input.TrainingHistoryID, "error", err.Error())
		}
	}

	return SubmitReportsResult{ReportIDs: reportIDs}, nil
}

func summaryHTML(input SubmitReportsInput) string {
	body := fmt.Sprintf("<p>Training session complete: %d videos watched.</p><ul>", input.VideoCount)
	for _, p := range input.Roster {
		rec, _ := input.Sheet.Record(p.ID)
		body += fmt.Sprintf("<li>%s: physical %d/10, emotional %d/10</li>", p.Name, rec.Physical, rec.Emotional)
	}
	return body + "</ul>"
}
