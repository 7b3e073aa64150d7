package scene_game_usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/domain/domain_util"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_taste_usecase"
)

// casRetryLimit 乐观并发冲突时的重试次数上限
// 状态变更全部写成纯函数后重试是安全的，每次重试从最新版本重新计算
const casRetryLimit = 3

// ChoicePredictor 二选一预测器，对局流程只依赖这一个方法
type ChoicePredictor interface {
	Predict(ctx context.Context, songAID, songBID string, listenerVector []float64) (string, error)
}

// GameSessionUsecase 对局编排：开局、发牌、落子、历史查询
type GameSessionUsecase struct {
	sessions  game_interface.GameSessionRepository
	songs     catalog_interface.SongRepository
	predictor ChoicePredictor
	timeout   time.Duration

	totalRounds int
	maxGamma    float64
}

func NewGameSessionUsecase(
	sessions game_interface.GameSessionRepository,
	songs catalog_interface.SongRepository,
	predictor ChoicePredictor,
	timeout time.Duration,
	totalRounds int,
	maxGamma float64,
) *GameSessionUsecase {
	return &GameSessionUsecase{
		sessions:    sessions,
		songs:       songs,
		predictor:   predictor,
		timeout:     timeout,
		totalRounds: totalRounds,
		maxGamma:    maxGamma,
	}
}

// StartSession 开启新场次
// 首次进入创建空档案；老玩家清空轮次状态，口味画像、历史最爱与情绪历史跨场次保留
func (gu *GameSessionUsecase) StartSession(ctx context.Context, username string) (*game_models.GameSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	if username == "" {
		return nil, fmt.Errorf("start session: empty username")
	}

	existing, err := gu.sessions.GetByUsername(ctx, username)
	if errors.Is(err, game_interface.ErrSessionNotFound) {
		now := time.Now().UTC()
		fresh := &game_models.GameSession{
			Username:           username,
			SongsPlayed:        []string{},
			SongsPresented:     []string{},
			HistoricalFavorite: []game_models.FavoriteSong{},
			UserProfile:        taste_models.NewTasteProfile(),
			MoodVector:         domain_util.Zeros(scene_taste_usecase.MoodDimension),
			MoodHistory:        []game_models.MoodSnapshot{},
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := gu.sessions.Upsert(ctx, fresh); err != nil {
			return nil, fmt.Errorf("start session for %s: %w", username, err)
		}
		return fresh, nil
	}
	if err != nil {
		return nil, fmt.Errorf("start session for %s: %w", username, err)
	}

	// 只清空轮次状态，最爱与情绪向量跨场次延续
	return gu.updateSession(ctx, existing.Username, func(session *game_models.GameSession) error {
		session.SongsPlayed = []string{}
		session.SongsPresented = []string{}
		session.Progress = 0
		session.MoodRounds = nil
		return nil
	})
}

// FetchSongPair 为当前轮抽取两首未呈现过的歌曲并附带选择预测
// 曝光衰减系数随进度增大，压低已被频繁选中歌曲的出场概率
func (gu *GameSessionUsecase) FetchSongPair(ctx context.Context, username, language string) (*game_models.SongPair, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	session, err := gu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch song pair for %s: %w", username, err)
	}

	gamma := scene_taste_usecase.Gamma(session.Progress, gu.totalRounds, gu.maxGamma)

	candidates, err := gu.songs.SampleUnseen(ctx, session.SongsPresented, language, gamma, 2)
	if err != nil {
		return nil, fmt.Errorf("fetch song pair for %s: %w", username, err)
	}
	if len(candidates) < 2 {
		// 曲库太小或呈现记录把候选耗尽了，放开排除名单重抽一次
		candidates, err = gu.songs.SampleUnseen(ctx, nil, language, gamma, 2)
		if err != nil {
			return nil, fmt.Errorf("fetch song pair for %s: %w", username, err)
		}
	}
	if len(candidates) < 2 {
		return nil, fmt.Errorf("fetch song pair for %s: %w", username, catalog_interface.ErrSongNotFound)
	}

	songA, songB := candidates[0], candidates[1]

	if _, err := gu.updateSession(ctx, username, func(session *game_models.GameSession) error {
		session.SongsPresented = append(session.SongsPresented, songA.ID.Hex(), songB.ID.Hex())
		return nil
	}); err != nil {
		return nil, err
	}

	pair := &game_models.SongPair{SongA: songA, SongB: songB}

	// 预测失败只降级不阻断：没有预测对局照常进行
	predicted, err := gu.predictor.Predict(ctx, songA.ID.Hex(), songB.ID.Hex(), session.UserProfile.CumulativeVector)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"song_a":   songA.ID.Hex(),
			"song_b":   songB.ID.Hex(),
		}).WithError(err).Warn("选择预测失败，本轮不带预测")
		return pair, nil
	}
	pair.PredictedID = predicted

	return pair, nil
}

// ApplyRound 落一轮选择：计数、画像、情绪轨迹一次事务性更新
// 到达总轮数时做终局聚合，把加权情绪向量落入历史档案
func (gu *GameSessionUsecase) ApplyRound(ctx context.Context, username, chosenID string, moods []string) (*game_models.RoundResult, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	song, err := gu.songs.GetByID(ctx, chosenID)
	if err != nil {
		return nil, fmt.Errorf("apply round for %s: %w", username, err)
	}

	if _, err := gu.songs.IncrementPickCount(ctx, chosenID); err != nil {
		return nil, fmt.Errorf("apply round for %s: %w", username, err)
	}

	result := &game_models.RoundResult{}
	_, err = gu.updateSession(ctx, username, func(session *game_models.GameSession) error {
		session.SongsPlayed = append(session.SongsPlayed, chosenID)
		session.Progress++

		session.MoodRounds = append(session.MoodRounds, taste_models.RoundMoodEntry{
			Round: session.Progress,
			Mood:  moods,
		})
		roundMood := scene_taste_usecase.AggregateMoods(moods)
		session.MoodVector = scene_taste_usecase.RollingMoodVector(session.MoodVector, roundMood, session.Progress)

		if err := scene_taste_usecase.ApplyChoice(&session.UserProfile, song); err != nil {
			return err
		}

		now := time.Now().UTC()
		session.LastFavorite = &game_models.FavoriteSong{
			SongID:    song.ID.Hex(),
			Title:     song.Title,
			Artist:    song.Artist,
			Album:     song.Album,
			AlbumArt:  song.AlbumArt,
			DateAdded: &now,
		}

		result.Completed = session.Progress >= gu.totalRounds
		if result.Completed {
			final := scene_taste_usecase.WeightedFinalMood(session.MoodRounds)
			session.MoodVector = final
			session.MoodHistory = append(session.MoodHistory, game_models.MoodSnapshot{
				RecordedAt: now,
				Vector:     final,
			})
			session.MoodRounds = nil
			session.HistoricalFavorite = append(session.HistoricalFavorite, *session.LastFavorite)
			result.FinalMood = final
		}
		result.Progress = session.Progress
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// HistoricalFavorites 返回听众历场最爱，按落档顺序
func (gu *GameSessionUsecase) HistoricalFavorites(ctx context.Context, username string) ([]game_models.FavoriteSong, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	session, err := gu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("historical favorites for %s: %w", username, err)
	}
	return session.HistoricalFavorite, nil
}

// MoodTimeline 返回听众逐场的最终情绪向量档案
func (gu *GameSessionUsecase) MoodTimeline(ctx context.Context, username string) ([]game_models.MoodSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	session, err := gu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("mood timeline for %s: %w", username, err)
	}
	return session.MoodHistory, nil
}

// CurrentSession 查询当前对局状态
func (gu *GameSessionUsecase) CurrentSession(ctx context.Context, username string) (*game_models.GameSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.timeout)
	defer cancel()

	session, err := gu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("current session for %s: %w", username, err)
	}
	return session, nil
}

// updateSession 读取-变更-带版本替换，冲突时从最新版本重算
// apply必须是纯函数：只依赖传入的session和自身参数，重试才是安全的
func (gu *GameSessionUsecase) updateSession(ctx context.Context, username string, apply func(*game_models.GameSession) error) (*game_models.GameSession, error) {
	var lastErr error
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		session, err := gu.sessions.GetByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("update session for %s: %w", username, err)
		}

		if err := apply(session); err != nil {
			return nil, fmt.Errorf("update session for %s: %w", username, err)
		}
		session.UpdatedAt = time.Now().UTC()

		err = gu.sessions.ReplaceWithVersion(ctx, session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, game_interface.ErrVersionConflict) {
			return nil, fmt.Errorf("update session for %s: %w", username, err)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("update session for %s: %w", username, ctx.Err())
		case <-time.After(time.Duration(attempt+1) * 20 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("update session for %s: %w", username, lastErr)
}
