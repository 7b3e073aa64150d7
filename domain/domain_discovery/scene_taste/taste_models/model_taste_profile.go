package taste_models

// TasteProfile 单个听众的累积偏好画像
// 每次选歌精确更新一次，跨场次延续，从不回溯修改
type TasteProfile struct {
	PreferredGenres  map[string]int `bson:"preferred_genres" json:"preferredGenres"`
	PreferredArtists map[string]int `bson:"preferred_artists" json:"preferredArtists"`
	PreferredYears   map[string]int `bson:"preferred_years" json:"preferredYears"`

	// CumulativeVector 所有已选歌曲嵌入向量的累加和
	// 维度由第一首贡献向量的歌曲固定，后续维度不一致是调用方契约错误
	CumulativeVector []float64 `bson:"cumulative_vector" json:"cumulativeVector"`

	TotalSelections int `bson:"total_selections" json:"totalSelections"`
}

// NewTasteProfile 返回空画像，计数map已初始化
func NewTasteProfile() TasteProfile {
	return TasteProfile{
		PreferredGenres:  make(map[string]int),
		PreferredArtists: make(map[string]int),
		PreferredYears:   make(map[string]int),
	}
}

// RoundMoodEntry 一局中单轮的情绪记录，按轮次有序
// 场次结束后只保留加权聚合出的最终向量，轮记录本身随场次丢弃
type RoundMoodEntry struct {
	Round int      `bson:"round" json:"round"`
	Mood  []string `bson:"mood" json:"mood"`
}
