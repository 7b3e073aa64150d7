package scene_taste_usecase

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/domain/domain_util"
)

// ApplyChoice 把一次选择落进画像：计数器与累计向量一并更新
// 歌曲缺少音乐向量时只更新计数器并告警，不中断整局
// 维度不一致说明数据被污染，直接报错
func ApplyChoice(profile *taste_models.TasteProfile, song *catalog_models.Song) error {
	if profile == nil || song == nil {
		return fmt.Errorf("apply choice: nil profile or song")
	}

	if profile.PreferredGenres == nil {
		profile.PreferredGenres = make(map[string]int)
	}
	if profile.PreferredArtists == nil {
		profile.PreferredArtists = make(map[string]int)
	}
	if profile.PreferredYears == nil {
		profile.PreferredYears = make(map[string]int)
	}

	for _, genre := range song.Genres {
		if genre == "" {
			continue
		}
		profile.PreferredGenres[genre]++
	}
	if song.Artist != "" {
		profile.PreferredArtists[song.Artist]++
	}
	if song.Year > 0 {
		profile.PreferredYears[strconv.Itoa(song.Year)]++
	}
	profile.TotalSelections++

	if len(song.MusicVector) == 0 {
		logrus.WithFields(logrus.Fields{
			"song_id": song.ID.Hex(),
			"title":   song.Title,
		}).Warn("歌曲缺少音乐向量，跳过累计向量更新")
		return nil
	}

	if len(profile.CumulativeVector) == 0 {
		profile.CumulativeVector = domain_util.Zeros(len(song.MusicVector))
	}

	updated, err := domain_util.Add(profile.CumulativeVector, song.MusicVector)
	if err != nil {
		return fmt.Errorf("apply choice for song %s: %w", song.ID.Hex(), err)
	}
	profile.CumulativeVector = updated

	return nil
}
