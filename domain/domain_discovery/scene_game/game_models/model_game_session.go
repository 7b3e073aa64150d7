package game_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
)

// GameSession 一个听众的游戏文档，以用户名为业务主键
// 场次重开时清空轮次状态，但口味画像、历史最爱和情绪历史跨场次延续
type GameSession struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`

	SongsPlayed    []string `bson:"songs_played" json:"songsPlayed"`
	SongsPresented []string `bson:"songs_presented" json:"songsPresented"`
	Progress       int      `bson:"progress" json:"progress"`

	LastFavorite       *FavoriteSong  `bson:"last_favorite,omitempty" json:"lastFavorite,omitempty"`
	HistoricalFavorite []FavoriteSong `bson:"historical_favorite" json:"historicalFavorite"`

	UserProfile taste_models.TasteProfile `bson:"user_profile" json:"userProfile"`

	// MoodVector 当前场次的滚动情绪向量（逐轮滑动平均，终局换成加权聚合）
	MoodVector []float64 `bson:"mood_vector" json:"mood_vector"`

	// MoodRounds 当前场次逐轮情绪标签，终局聚合后丢弃
	MoodRounds []taste_models.RoundMoodEntry `bson:"mood_rounds" json:"moodRounds"`

	// MoodHistory 每完成一场追加一条最终情绪向量，只增不改
	MoodHistory []MoodSnapshot `bson:"mood_history" json:"mood_history"`

	// Version 乐观并发控制标记，每次ReplaceWithVersion成功后递增
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type FavoriteSong struct {
	SongID    string     `bson:"song_id" json:"id"`
	Title     string     `bson:"title" json:"song"`
	Artist    string     `bson:"artist" json:"artist"`
	Album     string     `bson:"album" json:"album"`
	AlbumArt  string     `bson:"album_art" json:"albumart"`
	DateAdded *time.Time `bson:"date_added,omitempty" json:"date_added,omitempty"`
}

// MoodSnapshot 一场游戏结束时落档的最终情绪向量
type MoodSnapshot struct {
	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
	Vector     []float64 `bson:"vector" json:"vector"`
}

// ProfileMatch 画像向量检索命中的其他听众
type ProfileMatch struct {
	Username string `bson:"username" json:"username"`
	Title    string `bson:"title" json:"song"`
	Artist   string `bson:"artist" json:"artist"`
	Album    string `bson:"album" json:"album"`
}
