package orchestrators

import (
	"context"
	"errors"
	"testing"

	"ugoness/internal/domain/catalog"
)

type mockCatalogService struct {
	videos   []catalog.Video
	mappings []catalog.TagMapping
	tags     []catalog.Tag

	videosErr error
}

func (m *mockCatalogService) ListVideos(_ context.Context, _ string) ([]catalog.Video, error) {
	return m.videos, m.videosErr
}

func (m *mockCatalogService) ListVideoTagMappings(_ context.Context, _ string) ([]catalog.TagMapping, error) {
	return m.mappings, nil
}

func (m *mockCatalogService) ListTags(_ context.Context, _ string) ([]catalog.Tag, error) {
	return m.tags, nil
}

func TestExecuteLoadCatalogJoinsTags(t *testing.T) {
	svc := &mockCatalogService{
		videos: []catalog.Video{
			{ID: 10, Title: "Seated Stretch", VideoURL: "https://cdn/10"},
			{ID: 20, Title: "Ball Toss", VideoURL: "https://cdn/20"},
		},
		tags: []catalog.Tag{{ID: 1, Name: "seated"}},
		mappings: []catalog.TagMapping{
			{VideoID: 10, TagID: 1},
			{VideoID: 20, TagID: 99}, // unknown tag, skipped
		},
	}

	result, err := ExecuteLoadCatalog(context.Background(), LoadCatalogInput{Token: "tok"},
		LoadCatalogDeps{Catalog: svc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Videos) != 2 {
		t.Fatalf("Videos = %+v, want 2", result.Videos)
	}
	if len(result.Videos[0].Tags) != 1 || result.Videos[0].Tags[0].Name != "seated" {
		t.Fatalf("video 10 tags = %+v, want [seated]", result.Videos[0].Tags)
	}
	if len(result.Videos[1].Tags) != 0 {
		t.Fatalf("video 20 tags = %+v, want none after skipping unknown tag", result.Videos[1].Tags)
	}
}

func TestExecuteLoadCatalogFetchFailureIsFatal(t *testing.T) {
	svc := &mockCatalogService{videosErr: errors.New("api down")}
	if _, err := ExecuteLoadCatalog(context.Background(), LoadCatalogInput{Token: "tok"},
		LoadCatalogDeps{Catalog: svc}); err == nil {
		t.Fatal("expected error when a catalog fetch fails")
	}
}
