package catalog

import (
	"errors"
	"fmt"
)

// Video is a training video from the catalog service. Read-only reference
// data; the session never mutates it.
type Video struct {
	ID              int64
	Title           string
	ThumbnailURL    string
	VideoURL        string
	Description     string // markdown
	DurationSeconds int
}

// Validate checks the video's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (v Video) Validate() error {
	if v.ID <= 0 {
		return errors.New("video ID must be positive")
	}
	if v.Title == "" {
		return errors.New("video title cannot be empty")
	}
	if v.VideoURL == "" {
		return errors.New("video URL cannot be empty")
	}
	return nil
}

// FormatDuration renders the duration as M:SS for display.
// Unknown durations render as "--:--".
func (v Video) FormatDuration() string {
	if v.DurationSeconds <= 0 {
		return "--:--"
	}
	return fmt.Sprintf("%d:%02d", v.DurationSeconds/60, v.DurationSeconds%60)
}

// Tag is a catalog label attached to videos via TagMapping rows.
type Tag struct {
	ID   int64
	Name string
}

// TagMapping links one video to one tag.
type TagMapping struct {
	VideoID int64
	TagID   int64
}

// VideoWithTags is a video with its tag set resolved client-side.
// Tag order is not significant.
type VideoWithTags struct {
	Video
	Tags []Tag
}

// ResolveTags joins videos, tag mappings, and tag metadata. A video's tags
// are the tags whose mapping row references the video's ID. Mappings that
// reference an unknown tag are skipped rather than failing the join.
func ResolveTags(videos []Video, mappings []TagMapping, tags []Tag) []VideoWithTags {
	tagByID := make(map[int64]Tag, len(tags))
	for _, t := range tags {
		tagByID[t.ID] = t
	}

	tagsByVideo := make(map[int64][]Tag)
	for _, m := range mappings {
		if t, ok := tagByID[m.TagID]; ok {
			tagsByVideo[m.VideoID] = append(tagsByVideo[m.VideoID], t)
		}
	}

	out := make([]VideoWithTags, len(videos))
	for i, v := range videos {
		out[i] = VideoWithTags{Video: v, Tags: tagsByVideo[v.ID]}
	}
	return out
}

// HasTag reports whether the video carries the given tag.
func (v VideoWithTags) HasTag(tagID int64) bool {
	for _, t := range v.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// ByID indexes videos by their ID for playlist seeding.
func ByID(videos []VideoWithTags) map[int64]Video {
	m := make(map[int64]Video, len(videos))
	for _, v := range videos {
		m[v.ID] = v.Video
	}
	return m
}
