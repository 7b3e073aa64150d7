package scene_catalog_api_route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller/controller_discovery/scene_catalog_api_controller"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_catalog"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_catalog_usecase"
)

func NewCatalogRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	songRepo := repository_discovery_catalog.NewSongRepository(db, domain.CollectionCatalogSong)

	songUsecase := scene_catalog_usecase.NewSongUsecase(songRepo, timeout)
	scanUsecase := scene_catalog_usecase.NewLibraryScanUsecase(songRepo, timeout)

	catalogCtrl := scene_catalog_api_controller.NewCatalogController(songUsecase, scanUsecase)

	songGroup := group.Group("/songs")
	{
		// GET /songs?keyword=xxx&page=1&page_size=20&sort=title&order=asc
		songGroup.GET("", catalogCtrl.BrowseSongs)
		songGroup.GET("/top", catalogCtrl.TopPicked)
		songGroup.GET("/counts", catalogCtrl.FilterCounts)
		songGroup.GET("/:id", catalogCtrl.SongDetail)
	}

	// 扫描媒体库目录入库
	group.POST("/library/scan", catalogCtrl.ScanLibrary)
}
