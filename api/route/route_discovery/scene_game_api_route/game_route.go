package scene_game_api_route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller/controller_discovery/scene_game_api_controller"
	"github.com/soundsage/backend/bootstrap"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_catalog"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_game"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_taste"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_catalog_usecase"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_game_usecase"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_taste_usecase"
)

func NewGameRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	sessionRepo := repository_discovery_game.NewGameSessionRepository(db, domain.CollectionGameSession)
	songRepo := repository_discovery_catalog.NewSongRepository(db, domain.CollectionCatalogSong)
	vectorLookup := repository_discovery_taste.NewSongVectorRepository(db, domain.CollectionCatalogSong)

	predictor := scene_taste_usecase.NewChoicePredictorUsecase(vectorLookup, timeout)
	gameUsecase := scene_game_usecase.NewGameSessionUsecase(
		sessionRepo,
		songRepo,
		predictor,
		timeout,
		env.GameTotalRounds,
		env.GameMaxGamma,
	)
	songUsecase := scene_catalog_usecase.NewSongUsecase(songRepo, timeout)

	gameCtrl := scene_game_api_controller.NewGameController(gameUsecase, songUsecase)

	gameGroup := group.Group("/game")
	{
		// 开始或重置一局游戏
		gameGroup.POST("/session", gameCtrl.StartSession)
		gameGroup.GET("/session", gameCtrl.GetSession)

		// 取一对未呈现歌曲，GET /game/pair?language=English
		gameGroup.GET("/pair", gameCtrl.FetchSongPair)

		// 提交本轮选择与情绪标签
		gameGroup.POST("/round", gameCtrl.ApplyRound)

		gameGroup.GET("/favorites", gameCtrl.HistoricalFavorites)
		gameGroup.GET("/mood_history", gameCtrl.MoodTimeline)
	}
}
