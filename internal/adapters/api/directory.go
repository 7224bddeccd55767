package api

import (
	"context"
	"fmt"
	"net/http"

	"ugoness/internal/domain/participant"
)

// userJSON mirrors the service's user representation.
type userJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (u userJSON) toDomain() participant.Participant {
	return participant.Participant{
		ID:          u.ID,
		Name:        u.Name,
		DateOfBirth: u.DateOfBirth,
	}
}

// ListUsers fetches every registered participant.
func (c *Client) ListUsers(ctx context.Context, token string) ([]participant.Participant, error) {
	var raw []userJSON
	if err := c.doJSON(ctx, http.MethodGet, "/users", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]participant.Participant, len(raw))
	for i, u := range raw {
		users[i] = u.toDomain()
	}
	return users, nil
}

// GetUser fetches one participant by ID. Returns *APIError with status 404
// if the participant no longer exists.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (participant.Participant, error) {
	var raw userJSON
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), token, nil, &raw); err != nil {
		return participant.Participant{}, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return raw.toDomain(), nil
}
