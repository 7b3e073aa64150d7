package scene_chat_usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/domain/domain_discovery/scene_chat/chat_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_taste_usecase"
)

// closestLabelCount 画像解读展示的标签数
const closestLabelCount = 3

// PersonalityInterpreter 把数值画像翻译成标签，拆出接口便于替换实现
type PersonalityInterpreter interface {
	Interpret(ctx context.Context, moodVector, cumulativeVector []float64, k int) (closestMoods, closestGenres []string, err error)
}

// ProfileInsightsUsecase 听众画像洞察：性格解读与同好匹配
type ProfileInsightsUsecase struct {
	sessions    game_interface.GameSessionRepository
	profiles    game_interface.ProfileSearchRepository
	interpreter PersonalityInterpreter
	timeout     time.Duration
}

func NewProfileInsightsUsecase(
	sessions game_interface.GameSessionRepository,
	profiles game_interface.ProfileSearchRepository,
	interpreter PersonalityInterpreter,
	timeout time.Duration,
) *ProfileInsightsUsecase {
	return &ProfileInsightsUsecase{
		sessions:    sessions,
		profiles:    profiles,
		interpreter: interpreter,
		timeout:     timeout,
	}
}

// Summarize 生成听众的性格摘要
// 情绪历史不足两场时不给变化分类，只给标签解读
func (pu *ProfileInsightsUsecase) Summarize(ctx context.Context, username string) (*chat_models.PersonalitySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.timeout)
	defer cancel()

	session, err := pu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("personality summary for %s: %w", username, err)
	}

	moods, genres, err := pu.interpreter.Interpret(ctx, session.MoodVector, session.UserProfile.CumulativeVector, closestLabelCount)
	if err != nil {
		return nil, fmt.Errorf("personality summary for %s: %w", username, err)
	}

	summary := &chat_models.PersonalitySummary{
		ClosestMoods:  moods,
		ClosestGenres: genres,
	}

	if history := session.MoodHistory; len(history) >= 2 {
		previous := history[len(history)-2].Vector
		current := history[len(history)-1].Vector
		report, err := scene_taste_usecase.DetectShift(previous, current)
		if err != nil {
			// 历史向量维度异常只影响变化分类，摘要其余部分照常返回
			logrus.WithField("username", username).WithError(err).Warn("情绪变化检测失败")
		} else {
			summary.MoodShift = &report
		}
	}

	return summary, nil
}

// TasteMatches 找口味最接近的其他听众
// 自己从结果中排除
func (pu *ProfileInsightsUsecase) TasteMatches(ctx context.Context, username string, limit int) ([]game_models.ProfileMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.timeout)
	defer cancel()

	session, err := pu.sessions.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("taste matches for %s: %w", username, err)
	}
	if len(session.UserProfile.CumulativeVector) == 0 {
		return nil, fmt.Errorf("taste matches for %s: %w", username, chat_models.ErrNoMatch)
	}

	matches, err := pu.profiles.MatchProfiles(ctx, session.UserProfile.CumulativeVector, username, limit)
	if err != nil {
		return nil, fmt.Errorf("taste matches for %s: %w", username, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("taste matches for %s: %w", username, chat_models.ErrNoMatch)
	}
	return matches, nil
}
