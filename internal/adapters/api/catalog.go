package api

import (
	"context"
	"fmt"
	"net/http"

	"ugoness/internal/domain/catalog"
)

// videoJSON mirrors the service's video representation. Duration is in
// seconds and optional.
type videoJSON struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"`
}

// tagJSON mirrors the service's tag representation.
type tagJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// mappingJSON mirrors the service's video-tag mapping rows. The mapping
// endpoint alone uses snake_case keys.
type mappingJSON struct {
	VideoID int64 `json:"video_id"`
	TagID   int64 `json:"video_tag_id"`
}

// ListVideos fetches the full video catalog.
func (c *Client) ListVideos(ctx context.Context, token string) ([]catalog.Video, error) {
	var raw []videoJSON
	if err := c.doJSON(ctx, http.MethodGet, "/videos", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	videos := make([]catalog.Video, len(raw))
	for i, v := range raw {
		videos[i] = catalog.Video{
			ID:              v.ID,
			Title:           v.Title,
			ThumbnailURL:    v.ThumbnailURL,
			VideoURL:        v.VideoURL,
			Description:     v.Description,
			DurationSeconds: v.Duration,
		}
	}
	return videos, nil
}

// ListTags fetches all tag metadata.
func (c *Client) ListTags(ctx context.Context, token string) ([]catalog.Tag, error) {
	var raw []tagJSON
	if err := c.doJSON(ctx, http.MethodGet, "/tags", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	tags := make([]catalog.Tag, len(raw))
	for i, t := range raw {
		tags[i] = catalog.Tag{ID: t.ID, Name: t.Name}
	}
	return tags, nil
}

// ListVideoTagMappings fetches the video-to-tag join rows.
func (c *Client) ListVideoTagMappings(ctx context.Context, token string) ([]catalog.TagMapping, error) {
	var raw []mappingJSON
	if err := c.doJSON(ctx, http.MethodGet, "/videoTags", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing video tag mappings: %w", err)
	}
	mappings := make([]catalog.TagMapping, len(raw))
	for i, m := range raw {
		mappings[i] = catalog.TagMapping{VideoID: m.VideoID, TagID: m.TagID}
	}
	return mappings, nil
}
