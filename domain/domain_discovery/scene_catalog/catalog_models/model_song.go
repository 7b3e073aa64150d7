package catalog_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Song struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"song"`
	Artist   string             `bson:"artist" json:"artist"`
	Album    string             `bson:"album" json:"album"`
	AlbumArt string             `bson:"album_art" json:"albumart"`
	Genres   []string           `bson:"genres" json:"genres"`
	Year     int                `bson:"year" json:"year"`
	Language string             `bson:"language" json:"language"`

	// SongMood 外部标注的情绪标签（如 Happy、Melancholy）
	SongMood []string `bson:"song_mood" json:"song_mood"`

	// MusicVector / LyricsVector 内容嵌入向量，由外部管线写入
	// 缺失是合法状态：歌曲可被浏览和选中，只是不参与相似度计算
	MusicVector  []float64 `bson:"music_vector,omitempty" json:"music_vector,omitempty"`
	LyricsVector []float64 `bson:"lyrics_vector,omitempty" json:"lyrics_vector,omitempty"`

	PickCount int `bson:"pick_count" json:"pick_count"`

	Path      string    `bson:"path,omitempty" json:"-"` // 入库时的音频文件路径
	Suffix    string    `bson:"suffix,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SongCandidate 外部相似度检索返回的候选行，已按相关度降序排好
// Score 来自检索层（vectorSearchScore），本服务只做过滤和选取，不重排
type SongCandidate struct {
	ID       string  `bson:"_id" json:"id"`
	Title    string  `bson:"title" json:"song"`
	Artist   string  `bson:"artist" json:"artist"`
	Album    string  `bson:"album" json:"album"`
	AlbumArt string  `bson:"album_art" json:"albumart"`
	Language string  `bson:"language" json:"language"`
	Year     int     `bson:"year" json:"year"`
	Score    float64 `bson:"score" json:"score"`
}

type SongFilterCounts struct {
	Total      int64 `json:"total"`
	WithMood   int64 `json:"with_mood"`
	Vectorized int64 `json:"vectorized"`
}
