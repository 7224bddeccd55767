package training

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Step identifies one screen of the training session wizard.
type Step string

const (
	StepParticipants Step = "participants"
	StepVideos       Step = "videos"
	StepWatch        Step = "watch"
	StepForm         Step = "form"
)

// Wizard route paths. The query string attached to these paths is the
// session's only durable state: a reload or deep link must reconstruct the
// same selections from the user and video IDs alone.
const (
	PathParticipants = "/clients/training/participants"
	PathVideos       = "/clients/training/videos"
	PathWatch        = "/clients/training/watch"
	PathForm         = "/clients/training/form"
)

// EncodeIDs renders an ordered ID list as the csv used in wizard URLs.
func EncodeIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeIDs parses a csv of IDs, preserving order and repeats. Blank
// tokens are ignored so trailing commas and empty parameters are harmless;
// anything non-numeric fails the whole parse.
func DecodeIDs(csv string) ([]int64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var ids []int64
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed ID %q in list", tok)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// StepURL builds the wizard URL for a step with the given selections
// encoded in the query string. The form step carries only users: the
// training history ID travels in the server-side session, so reloading
// the form without finishing playback requires restarting the wizard.
func StepURL(step Step, userIDs, videoIDs []int64) string {
	q := url.Values{}
	if users := EncodeIDs(userIDs); users != "" || step != StepParticipants {
		q.Set("users", users)
	}
	var path string
	switch step {
	case StepParticipants:
		path = PathParticipants
		q.Set("videos", EncodeIDs(videoIDs))
	case StepVideos:
		path = PathVideos
		q.Set("videos", EncodeIDs(videoIDs))
	case StepWatch:
		path = PathWatch
		q.Set("videos", EncodeIDs(videoIDs))
	case StepForm:
		path = PathForm
	default:
		path = PathParticipants
	}
	return path + "?" + q.Encode()
}
