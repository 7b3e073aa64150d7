package taste_models

import "go.mongodb.org/mongo-driver/bson/primitive"

// VectorTable 全局参考向量表（情绪/流派原型向量），单例配置文档
// 画像解读时用来给听众向量找最接近的标签
type VectorTable struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Moods  map[string][]float64 `bson:"moods" json:"moods"`
	Genres map[string][]float64 `bson:"genres" json:"genres"`
}
