package scene_chat_api_route

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller/controller_discovery/scene_chat_api_controller"
	"github.com/soundsage/backend/bootstrap"
	"github.com/soundsage/backend/cache"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_catalog"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_game"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_chat_usecase"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_taste_usecase"
)

func NewChatRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	store cache.Store,
	group *gin.RouterGroup,
) {
	songRepo := repository_discovery_catalog.NewSongRepository(db, domain.CollectionCatalogSong)
	searchRepo := repository_discovery_catalog.NewVectorSearchRepository(
		db,
		domain.CollectionCatalogSong,
		env.MusicVectorIndex,
		env.LyricsVectorIndex,
	)
	sessionRepo := repository_discovery_game.NewGameSessionRepository(db, domain.CollectionGameSession)
	profileRepo := repository_discovery_game.NewProfileSearchRepository(
		db,
		domain.CollectionGameSession,
		env.ProfileVectorIndex,
	)
	vectorTableRepo := repository.NewConfigMongoRepository[taste_models.VectorTable](db, domain.CollectionVectorTable)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recommendUsecase := scene_chat_usecase.NewRecommendUsecase(
		songRepo,
		searchRepo,
		store,
		timeout,
		env.RecommendCandidates,
		env.RecommendLimit,
		rng,
	)

	interpreter := scene_taste_usecase.NewPersonalityUsecase(vectorTableRepo, timeout)
	insightsUsecase := scene_chat_usecase.NewProfileInsightsUsecase(sessionRepo, profileRepo, interpreter, timeout)

	chatCtrl := scene_chat_api_controller.NewChatController(recommendUsecase, insightsUsecase)

	chatGroup := group.Group("/chat")
	{
		// 相似推荐，GET /chat/similar?type=music&song_id=xxx[&language=English&year_min=1990&refresh=true]
		chatGroup.GET("/similar", chatCtrl.SimilarSongs)

		// 情绪标签重叠推荐
		chatGroup.GET("/mood_alike", chatCtrl.MoodAlikeSongs)

		chatGroup.GET("/personality", chatCtrl.PersonalitySummary)
		chatGroup.GET("/matches", chatCtrl.TasteMatches)
	}
}
