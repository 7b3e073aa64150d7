package scene_catalog_api_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_catalog_usecase"
)

type CatalogController struct {
	SongUsecase *scene_catalog_usecase.SongUsecase
	ScanUsecase *scene_catalog_usecase.LibraryScanUsecase
}

func NewCatalogController(
	songUsecase *scene_catalog_usecase.SongUsecase,
	scanUsecase *scene_catalog_usecase.LibraryScanUsecase,
) *CatalogController {
	return &CatalogController{
		SongUsecase: songUsecase,
		ScanUsecase: scanUsecase,
	}
}

func (c *CatalogController) BrowseSongs(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	sort := domain.SortOrder{
		Sort:  ctx.DefaultQuery("sort", "title"),
		Order: ctx.DefaultQuery("order", "asc"),
	}

	songs, total, err := c.SongUsecase.Browse(ctx.Request.Context(), ctx.Query("keyword"), sort, page, pageSize)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "songs", songs, int(total))
}

func (c *CatalogController) SongDetail(ctx *gin.Context) {
	songID := ctx.Param("id")

	song, err := c.SongUsecase.Detail(ctx.Request.Context(), songID)
	if err != nil {
		if errors.Is(err, catalog_interface.ErrSongNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SONG_NOT_FOUND", "没有找到这首歌")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "song", song, 1)
}

func (c *CatalogController) TopPicked(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_LIMIT", "limit参数必须是正整数")
		return
	}

	songs, err := c.SongUsecase.TopPicked(ctx.Request.Context(), ctx.Query("language"), limit)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "songs", songs, len(songs))
}

func (c *CatalogController) FilterCounts(ctx *gin.Context) {
	counts, err := c.SongUsecase.FilterCounts(ctx.Request.Context())
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "counts", counts, 1)
}

func (c *CatalogController) ScanLibrary(ctx *gin.Context) {
	var request struct {
		Path string `json:"path" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	summary, err := c.ScanUsecase.ScanDirectory(ctx.Request.Context(), request.Path)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SCAN_FAILED", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "scan", summary, summary.Scanned)
}
