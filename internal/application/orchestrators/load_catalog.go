package orchestrators

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ugoness/internal/domain/catalog"
)

// CatalogAPI defines the catalog operations needed to present videos with
// their tags resolved.
type CatalogAPI interface {
	ListVideos(ctx context.Context, token string) ([]catalog.Video, error)
	ListVideoTagMappings(ctx context.Context, token string) ([]catalog.TagMapping, error)
	ListTags(ctx context.Context, token string) ([]catalog.Tag, error)
}

// LoadCatalogInput carries input for the catalog load.
type LoadCatalogInput struct {
	Token string
}

// LoadCatalogResult carries the joined catalog in service order.
type LoadCatalogResult struct {
	Videos []catalog.VideoWithTags
}

// LoadCatalogDeps holds dependencies for LoadCatalog.
type LoadCatalogDeps struct {
	Catalog CatalogAPI
}

// ExecuteLoadCatalog fetches videos, tag mappings, and tag metadata
// concurrently and joins them client-side. Unlike participant resolution,
// a failed fetch fails the load: a chooser without its catalog is useless.
// PRE: Token is a valid API token
// POST: every video carries the tags its mapping rows reference
func ExecuteLoadCatalog(ctx context.Context, input LoadCatalogInput, deps LoadCatalogDeps) (LoadCatalogResult, error) {
	var (
		videos   []catalog.Video
		mappings []catalog.TagMapping
		tags     []catalog.Tag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videos, err = deps.Catalog.ListVideos(gctx, input.Token)
		return err
	})
	g.Go(func() error {
		var err error
		mappings, err = deps.Catalog.ListVideoTagMappings(gctx, input.Token)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = deps.Catalog.ListTags(gctx, input.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return LoadCatalogResult{}, fmt.Errorf("loading video catalog: %w", err)
	}

	return LoadCatalogResult{Videos: catalog.ResolveTags(videos, mappings, tags)}, nil
}
