package scene_catalog_usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSongRepo struct {
	searchResult  []*catalog_models.Song
	lastKeyword   string
	lastSkip      int64
	lastLimit     int64
	upsertedPaths []string
}

func (f *fakeSongRepo) GetByID(_ context.Context, _ string) (*catalog_models.Song, error) {
	return nil, catalog_interface.ErrSongNotFound
}

func (f *fakeSongRepo) GetByTitleArtist(_ context.Context, _, _ string) (*catalog_models.Song, error) {
	return nil, catalog_interface.ErrSongNotFound
}

func (f *fakeSongRepo) Search(_ context.Context, keyword string, _ domain.SortOrder, skip, limit int64) ([]*catalog_models.Song, error) {
	f.lastKeyword = keyword
	f.lastSkip = skip
	f.lastLimit = limit
	return f.searchResult, nil
}

func (f *fakeSongRepo) Count(_ context.Context, _ interface{}) (int64, error) {
	return int64(len(f.searchResult)), nil
}

func (f *fakeSongRepo) SampleUnseen(_ context.Context, _ []string, _ string, _ float64, _ int) ([]*catalog_models.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) GetMoodAlike(_ context.Context, _ []string, _ string, _ int) ([]*catalog_models.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) TopPicked(_ context.Context, _ string, _ int) ([]*catalog_models.Song, error) {
	return f.searchResult, nil
}

func (f *fakeSongRepo) IncrementPickCount(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeSongRepo) UpsertByPath(_ context.Context, song *catalog_models.Song) error {
	f.upsertedPaths = append(f.upsertedPaths, song.Path)
	return nil
}

func TestFoldKeyword(t *testing.T) {
	assert.Equal(t, "beyonce", foldKeyword("Beyoncé"))
	assert.Equal(t, "cafe tacvba", foldKeyword("  Café Tacvba "))
	assert.Equal(t, "", foldKeyword(""))
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Rock", "Indie"}, splitGenres("Rock; Indie"))
	assert.Equal(t, []string{"Pop", "R&B"}, splitGenres("Pop, R&B"))
	assert.Nil(t, splitGenres("  "))
}

func TestBrowse(t *testing.T) {
	repo := &fakeSongRepo{searchResult: []*catalog_models.Song{{Title: "hit"}}}
	uc := NewSongUsecase(repo, 2*time.Second)

	songs, total, err := uc.Browse(context.Background(), "Beyoncé", domain.SortOrder{Sort: "title", Order: "asc"}, 2, 20)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, int64(1), total)

	// 关键词折叠、分页换算
	assert.Equal(t, "beyonce", repo.lastKeyword)
	assert.Equal(t, int64(20), repo.lastSkip)
	assert.Equal(t, int64(20), repo.lastLimit)
}

func TestScanDirectory(t *testing.T) {
	t.Run("非音频文件被跳过", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFile(dir+"/notes.txt", []byte("just text")))

		repo := &fakeSongRepo{}
		uc := NewLibraryScanUsecase(repo, 10*time.Second)

		summary, err := uc.ScanDirectory(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Scanned)
		assert.Equal(t, 1, summary.Skipped)
		assert.Zero(t, summary.Ingested)
		assert.Empty(t, repo.upsertedPaths)
	})

	t.Run("路径不是目录时报错", func(t *testing.T) {
		uc := NewLibraryScanUsecase(&fakeSongRepo{}, 10*time.Second)
		_, err := uc.ScanDirectory(context.Background(), "/nonexistent/path")
		assert.Error(t, err)
	})
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
