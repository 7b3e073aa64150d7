package bootstrap

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`

	DBUri  string `mapstructure:"DB_URI"`
	DBName string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AccessTokenExpiryHour  int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	RefreshTokenExpiryHour int    `mapstructure:"REFRESH_TOKEN_EXPIRY_HOUR"`
	AccessTokenSecret      string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret     string `mapstructure:"REFRESH_TOKEN_SECRET"`

	// 每局游戏的轮数与曝光衰减上限
	GameTotalRounds int     `mapstructure:"GAME_TOTAL_ROUNDS"`
	GameMaxGamma    float64 `mapstructure:"GAME_MAX_GAMMA"`

	// Atlas向量检索索引名
	MusicVectorIndex   string `mapstructure:"MUSIC_VECTOR_INDEX"`
	LyricsVectorIndex  string `mapstructure:"LYRICS_VECTOR_INDEX"`
	ProfileVectorIndex string `mapstructure:"PROFILE_VECTOR_INDEX"`

	// 近邻检索召回规模与返回条数
	RecommendCandidates int `mapstructure:"RECOMMEND_CANDIDATES"`
	RecommendLimit      int `mapstructure:"RECOMMEND_LIMIT"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Fatal("找不到.env配置文件")
	}

	if err := viper.Unmarshal(&env); err != nil {
		logrus.WithError(err).Fatal("配置文件解析失败")
	}

	setEnvDefaults(&env)

	if env.AppEnv == "development" {
		logrus.Info("应用运行在开发模式")
	}

	return &env
}

func setEnvDefaults(env *Env) {
	if env.ContextTimeout <= 0 {
		env.ContextTimeout = 10
	}
	if env.GameTotalRounds <= 0 {
		env.GameTotalRounds = 10
	}
	if env.GameMaxGamma <= 0 {
		env.GameMaxGamma = 0.7
	}
	if env.RecommendCandidates <= 0 {
		env.RecommendCandidates = 100
	}
	if env.RecommendLimit <= 0 {
		env.RecommendLimit = 10
	}
	if env.MusicVectorIndex == "" {
		env.MusicVectorIndex = "music_vector_index"
	}
	if env.LyricsVectorIndex == "" {
		env.LyricsVectorIndex = "lyrics_vector_index"
	}
	if env.ProfileVectorIndex == "" {
		env.ProfileVectorIndex = "profile_vector_index"
	}
}
