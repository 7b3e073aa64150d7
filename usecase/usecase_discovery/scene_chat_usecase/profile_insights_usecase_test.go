package scene_chat_usecase

import (
	"context"
	"testing"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_chat/chat_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[string]*game_models.GameSession
}

func (f *fakeSessionRepo) GetByUsername(_ context.Context, username string) (*game_models.GameSession, error) {
	session, ok := f.sessions[username]
	if !ok {
		return nil, game_interface.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Upsert(_ context.Context, _ *game_models.GameSession) error { return nil }

func (f *fakeSessionRepo) ReplaceWithVersion(_ context.Context, _ *game_models.GameSession) error {
	return nil
}

type fakeProfileSearch struct {
	matches []game_models.ProfileMatch
}

func (f *fakeProfileSearch) MatchProfiles(_ context.Context, _ []float64, _ string, _ int) ([]game_models.ProfileMatch, error) {
	return f.matches, nil
}

type fakeInterpreter struct{}

func (f *fakeInterpreter) Interpret(_ context.Context, _, _ []float64, _ int) ([]string, []string, error) {
	return []string{"Happy"}, []string{"rock"}, nil
}

func sessionWithHistory(history []game_models.MoodSnapshot) *game_models.GameSession {
	profile := taste_models.NewTasteProfile()
	profile.CumulativeVector = []float64{1, 2, 3}
	return &game_models.GameSession{
		Username:    "alice",
		UserProfile: profile,
		MoodVector:  []float64{0.5, 0.5, 0.5},
		MoodHistory: history,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("历史不足两场时只有标签解读", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: map[string]*game_models.GameSession{
			"alice": sessionWithHistory([]game_models.MoodSnapshot{{Vector: []float64{0.1, 0.1, 0.1}}}),
		}}
		uc := NewProfileInsightsUsecase(sessions, &fakeProfileSearch{}, &fakeInterpreter{}, 2*time.Second)

		summary, err := uc.Summarize(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"Happy"}, summary.ClosestMoods)
		assert.Equal(t, []string{"rock"}, summary.ClosestGenres)
		assert.Nil(t, summary.MoodShift)
	})

	t.Run("最近两场之间做变化分类", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: map[string]*game_models.GameSession{
			"alice": sessionWithHistory([]game_models.MoodSnapshot{
				{Vector: []float64{0, 0, 0}},
				{Vector: []float64{0.5, 0.5, 0.5}},
			}),
		}}
		uc := NewProfileInsightsUsecase(sessions, &fakeProfileSearch{}, &fakeInterpreter{}, 2*time.Second)

		summary, err := uc.Summarize(context.Background(), "alice")
		require.NoError(t, err)
		require.NotNil(t, summary.MoodShift)
		assert.Equal(t, taste_models.MoodShiftPositive, summary.MoodShift.Shift)
	})

	t.Run("听众不存在时错误可识别", func(t *testing.T) {
		uc := NewProfileInsightsUsecase(&fakeSessionRepo{sessions: map[string]*game_models.GameSession{}}, &fakeProfileSearch{}, &fakeInterpreter{}, 2*time.Second)
		_, err := uc.Summarize(context.Background(), "nobody")
		assert.ErrorIs(t, err, game_interface.ErrSessionNotFound)
	})
}

func TestTasteMatches(t *testing.T) {
	t.Run("返回匹配的其他听众", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: map[string]*game_models.GameSession{
			"alice": sessionWithHistory(nil),
		}}
		profiles := &fakeProfileSearch{matches: []game_models.ProfileMatch{{Username: "bob", Title: "shared song"}}}
		uc := NewProfileInsightsUsecase(sessions, profiles, &fakeInterpreter{}, 2*time.Second)

		matches, err := uc.TasteMatches(context.Background(), "alice", 5)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "bob", matches[0].Username)
	})

	t.Run("画像为空时返回ErrNoMatch", func(t *testing.T) {
		empty := sessionWithHistory(nil)
		empty.UserProfile.CumulativeVector = nil
		sessions := &fakeSessionRepo{sessions: map[string]*game_models.GameSession{"alice": empty}}
		uc := NewProfileInsightsUsecase(sessions, &fakeProfileSearch{}, &fakeInterpreter{}, 2*time.Second)

		_, err := uc.TasteMatches(context.Background(), "alice", 5)
		assert.ErrorIs(t, err, chat_models.ErrNoMatch)
	})

	t.Run("没有相近听众时返回ErrNoMatch", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: map[string]*game_models.GameSession{
			"alice": sessionWithHistory(nil),
		}}
		uc := NewProfileInsightsUsecase(sessions, &fakeProfileSearch{}, &fakeInterpreter{}, 2*time.Second)

		_, err := uc.TasteMatches(context.Background(), "alice", 5)
		assert.ErrorIs(t, err, chat_models.ErrNoMatch)
	})
}
