package projections

import (
	"context"

	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/journal"
	"ugoness/internal/domain/participant"
)

// DirectoryAPI defines the directory reads used by chooser projections.
type DirectoryAPI interface {
	ListUsers(ctx context.Context, token string) ([]participant.Participant, error)
}

// CatalogAPI defines the catalog reads used by the video chooser.
type CatalogAPI interface {
	ListVideos(ctx context.Context, token string) ([]catalog.Video, error)
	ListTags(ctx context.Context, token string) ([]catalog.Tag, error)
	ListVideoTagMappings(ctx context.Context, token string) ([]catalog.TagMapping, error)
}

// JournalStore defines the local journal reads used by the home page.
type JournalStore interface {
	ListRecent(ctx context.Context, limit int) ([]journal.Entry, error)
}
