package scene_catalog_usecase

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
)

// sniffLength 文件头探测所需的字节数，filetype要求的上限
const sniffLength = 261

// LibraryScanUsecase 媒体库扫描：遍历目录、识别音频、抽取标签、幂等入库
type LibraryScanUsecase struct {
	songs   catalog_interface.SongRepository
	timeout time.Duration
}

func NewLibraryScanUsecase(songs catalog_interface.SongRepository, timeout time.Duration) *LibraryScanUsecase {
	return &LibraryScanUsecase{
		songs:   songs,
		timeout: timeout,
	}
}

// ScanDirectory 扫描目录并把识别出的音频写入曲库
// 单个文件失败只计数不中断，以路径为幂等键可安全重复扫描
func (ls *LibraryScanUsecase) ScanDirectory(ctx context.Context, root string) (*catalog_models.ScanSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, ls.timeout)
	defer cancel()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan directory %s: not a directory", root)
	}

	summary := &catalog_models.ScanSummary{StartedAt: time.Now().UTC()}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		summary.Scanned++

		song, ok, err := ls.extractSong(path)
		if err != nil {
			summary.Failed++
			logrus.WithField("path", path).WithError(err).Warn("音频文件入库失败")
			return nil
		}
		if !ok {
			summary.Skipped++
			return nil
		}

		if err := ls.songs.UpsertByPath(ctx, song); err != nil {
			summary.Failed++
			logrus.WithField("path", path).WithError(err).Warn("音频文件写库失败")
			return nil
		}
		summary.Ingested++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan directory %s: %w", root, err)
	}

	summary.FinishedAt = time.Now().UTC()
	logrus.WithFields(logrus.Fields{
		"root":     root,
		"scanned":  summary.Scanned,
		"ingested": summary.Ingested,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("媒体库扫描完成")

	return summary, nil
}

// extractSong 识别并抽取单个文件，非音频返回ok=false
func (ls *LibraryScanUsecase) extractSong(path string) (*catalog_models.Song, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.WithField("path", path).WithError(err).Warn("文件关闭失败")
		}
	}()

	head := make([]byte, sniffLength)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, false, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if !filetype.IsAudio(head[:n]) {
		return nil, false, nil
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, false, fmt.Errorf("failed to rewind %s: %w", path, err)
	}

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse tags of %s: %w", path, err)
	}

	title := strings.TrimSpace(metadata.Title())
	if title == "" {
		// 没有标题标签的文件退回文件名
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	now := time.Now().UTC()
	song := &catalog_models.Song{
		Title:     title,
		Artist:    strings.TrimSpace(metadata.Artist()),
		Album:     strings.TrimSpace(metadata.Album()),
		Genres:    splitGenres(metadata.Genre()),
		Year:      metadata.Year(),
		Path:      path,
		Suffix:    strings.TrimPrefix(filepath.Ext(path), "."),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return song, true, nil
}

// splitGenres 标签里的流派常见分号/逗号混写
func splitGenres(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ',' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
