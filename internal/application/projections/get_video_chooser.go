package projections

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ugoness/internal/application/listutil"
	"ugoness/internal/domain/catalog"
)

// GetVideoChooserQuery carries query parameters for the video selection step.
type GetVideoChooserQuery struct {
	Token       string
	Search      string // case-insensitive title filter
	TagID       int64  // restrict to one tag; zero means all
	SelectedIDs []int64
	Page        listutil.PageParams
}

// GetVideoChooserResult carries the chooser page data. Selected preserves
// the order (and repeats) of the videos= query parameter so the planned
// playlist renders exactly as it will play.
type GetVideoChooserResult struct {
	Selected   []catalog.VideoWithTags
	Candidates []catalog.VideoWithTags
	Tags       []catalog.Tag
	Missing    []int64
	PageInfo   listutil.PageInfo
}

// GetVideoChooserDeps holds dependencies for GetVideoChooser.
type GetVideoChooserDeps struct {
	Catalog CatalogAPI
}

// QueryGetVideoChooser builds the video selection screen. Videos, tags and
// mappings are fetched concurrently; unlike participant lookups, a catalog
// fetch failure is fatal because the step cannot render a partial catalog.
// PRE: Token is a valid API token
// POST: Candidates are title-sorted and paged; Selected keeps query order
func QueryGetVideoChooser(ctx context.Context, query GetVideoChooserQuery, deps GetVideoChooserDeps) (GetVideoChooserResult, error) {
	var (
		videos   []catalog.Video
		tags     []catalog.Tag
		mappings []catalog.TagMapping
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videos, err = deps.Catalog.ListVideos(gctx, query.Token)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = deps.Catalog.ListTags(gctx, query.Token)
		return err
	})
	g.Go(func() error {
		var err error
		mappings, err = deps.Catalog.ListVideoTagMappings(gctx, query.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return GetVideoChooserResult{}, err
	}

	tagged := catalog.ResolveTags(videos, mappings, tags)
	byID := make(map[int64]catalog.VideoWithTags, len(tagged))
	for _, v := range tagged {
		byID[v.Video.ID] = v
	}

	result := GetVideoChooserResult{Tags: tags}
	for _, id := range query.SelectedIDs {
		if v, ok := byID[id]; ok {
			result.Selected = append(result.Selected, v)
		} else {
			result.Missing = append(result.Missing, id)
		}
	}

	var candidates []catalog.VideoWithTags
	for _, v := range tagged {
		if query.Search != "" && !strings.Contains(strings.ToLower(v.Video.Title), strings.ToLower(query.Search)) {
			continue
		}
		if query.TagID != 0 && !v.HasTag(query.TagID) {
			continue
		}
		candidates = append(candidates, v)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if c := strings.Compare(candidates[i].Video.Title, candidates[j].Video.Title); c != 0 {
			return c < 0
		}
		return candidates[i].Video.ID < candidates[j].Video.ID
	})

	result.PageInfo = listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(candidates))
	lo, hi := result.PageInfo.Bounds()
	result.Candidates = candidates[lo:hi]
	return result, nil
}
