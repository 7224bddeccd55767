package api

import (
	"context"
	"fmt"
	"net/http"

	"ugoness/internal/domain/history"
	"ugoness/internal/domain/rating"
)

// idResponse is the creation envelope shared by the history endpoints.
type idResponse struct {
	ID int64 `json:"id"`
}

// CreateTrainingHistory creates an empty training history record. Viewing
// rows and reports attach to it afterwards.
func (c *Client) CreateTrainingHistory(ctx context.Context, token string) (int64, error) {
	var resp idResponse
	if err := c.doJSON(ctx, http.MethodPost, "/training-history", token, struct{}{}, &resp); err != nil {
		return 0, fmt.Errorf("creating training history: %w", err)
	}
	return resp.ID, nil
}

// AddViewingHistory records that one playlist entry was watched during the
// given training history. The server attaches the row itself; no follow-up
// update is needed.
func (c *Client) AddViewingHistory(ctx context.Context, token string, trainingHistoryID, contentID int64) (int64, error) {
	body := struct {
		ContentID int64 `json:"contentId"`
	}{ContentID: contentID}

	var resp idResponse
	path := fmt.Sprintf("/viewing-history/%d", trainingHistoryID)
	if err := c.doJSON(ctx, http.MethodPost, path, token, body, &resp); err != nil {
		return 0, fmt.Errorf("adding viewing history for content %d: %w", contentID, err)
	}
	return resp.ID, nil
}

// CreateReport files one participant's condition report against a training
// history.
func (c *Client) CreateReport(ctx context.Context, token string, trainingHistoryID, userID int64, rec rating.Record) (int64, error) {
	body := struct {
		UserID int64 `json:"userId"`
		Data   struct {
			Physical  int `json:"physical"`
			Emotional int `json:"emotional"`
		} `json:"data"`
	}{UserID: userID}
	body.Data.Physical = rec.Physical
	body.Data.Emotional = rec.Emotional

	var resp idResponse
	path := fmt.Sprintf("/reports/%d", trainingHistoryID)
	if err := c.doJSON(ctx, http.MethodPost, path, token, body, &resp); err != nil {
		return 0, fmt.Errorf("creating report for user %d: %w", userID, err)
	}
	return resp.ID, nil
}

// updateJSON mirrors the training history update payload. Nil slices stay
// off the wire so untouched fields are left alone server-side.
type updateJSON struct {
	ViewingHistoryIDs        []int64 `json:"viewingHistoryIds,omitempty"`
	PhysicalConditionFormIDs []int64 `json:"physicalConditionFormIds,omitempty"`
}

// UpdateTrainingHistory applies a partial update to a training history.
func (c *Client) UpdateTrainingHistory(ctx context.Context, token string, trainingHistoryID int64, upd history.Update) error {
	body := updateJSON{
		ViewingHistoryIDs:        upd.ViewingHistoryIDs,
		PhysicalConditionFormIDs: upd.PhysicalConditionFormIDs,
	}
	path := fmt.Sprintf("/training-history/%d", trainingHistoryID)
	if err := c.doJSON(ctx, http.MethodPut, path, token, body, nil); err != nil {
		return fmt.Errorf("updating training history %d: %w", trainingHistoryID, err)
	}
	return nil
}
