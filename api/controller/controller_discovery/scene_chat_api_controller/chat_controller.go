package scene_chat_api_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_chat/chat_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_chat_usecase"
)

const defaultMatchLimit = 5

type ChatController struct {
	RecommendUsecase *scene_chat_usecase.RecommendUsecase
	InsightsUsecase  *scene_chat_usecase.ProfileInsightsUsecase
}

func NewChatController(
	recommendUsecase *scene_chat_usecase.RecommendUsecase,
	insightsUsecase *scene_chat_usecase.ProfileInsightsUsecase,
) *ChatController {
	return &ChatController{
		RecommendUsecase: recommendUsecase,
		InsightsUsecase:  insightsUsecase,
	}
}

func chatUsername(ctx *gin.Context) (string, bool) {
	username := ctx.GetString("x-username")
	if username == "" {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "无法识别当前用户")
		return "", false
	}
	return username, true
}

// resolveSong 支持song_id直连或标题+歌手解析两种定位方式
func (c *ChatController) resolveSong(ctx *gin.Context) (string, bool) {
	songID := ctx.Query("song_id")
	title := ctx.Query("song")
	artist := ctx.Query("artist")

	if songID == "" && title == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", "需要song_id或song参数定位歌曲")
		return "", false
	}

	resolved, err := c.RecommendUsecase.ResolveSongID(ctx.Request.Context(), songID, title, artist)
	if err != nil {
		if errors.Is(err, catalog_interface.ErrSongNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SONG_NOT_FOUND", "没有找到这首歌")
			return "", false
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return "", false
	}
	return resolved, true
}

func parseFilter(ctx *gin.Context) chat_models.RecommendationFilter {
	yearMin, _ := strconv.Atoi(ctx.Query("year_min"))
	yearMax, _ := strconv.Atoi(ctx.Query("year_max"))
	return chat_models.RecommendationFilter{
		Language: ctx.Query("language"),
		YearMin:  yearMin,
		YearMax:  yearMax,
	}
}

func (c *ChatController) SimilarSongs(ctx *gin.Context) {
	songID, ok := c.resolveSong(ctx)
	if !ok {
		return
	}

	kind := ctx.DefaultQuery("type", "music")
	if kind != "music" && kind != "lyrics" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_TYPE", "type参数只支持music或lyrics")
		return
	}

	filter := parseFilter(ctx)
	refresh := ctx.Query("refresh") == "true"

	var (
		recommendation *chat_models.Recommendation
		err            error
	)
	if kind == "lyrics" {
		recommendation, err = c.RecommendUsecase.LyricallySimilar(ctx.Request.Context(), songID, filter, refresh)
	} else {
		recommendation, err = c.RecommendUsecase.MusicallySimilar(ctx.Request.Context(), songID, filter, refresh)
	}
	if err != nil {
		switch {
		case errors.Is(err, chat_models.ErrNoMatch):
			controller.ErrorResponse(ctx, http.StatusNotFound, "NO_MATCH", "没有符合条件的相似歌曲")
		case errors.Is(err, catalog_interface.ErrSongNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SONG_NOT_FOUND", "没有找到这首歌")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	controller.SuccessResponse(ctx, "recommendation", recommendation, recommendation.Pool)
}

func (c *ChatController) MoodAlikeSongs(ctx *gin.Context) {
	songID, ok := c.resolveSong(ctx)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "1"))
	if err != nil || limit <= 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_LIMIT", "limit参数必须是正整数")
		return
	}

	songs, err := c.RecommendUsecase.MoodAlikeSongs(ctx.Request.Context(), songID, limit)
	if err != nil {
		switch {
		case errors.Is(err, chat_models.ErrNoMatch):
			controller.ErrorResponse(ctx, http.StatusNotFound, "NO_MATCH", "没有情绪相近的歌曲")
		case errors.Is(err, catalog_interface.ErrSongNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SONG_NOT_FOUND", "没有找到这首歌")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	controller.SuccessResponse(ctx, "songs", songs, len(songs))
}

func (c *ChatController) PersonalitySummary(ctx *gin.Context) {
	username, ok := chatUsername(ctx)
	if !ok {
		return
	}

	summary, err := c.InsightsUsecase.Summarize(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, game_interface.ErrSessionNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "先玩几轮游戏再来看画像吧")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "personality", summary, 1)
}

func (c *ChatController) TasteMatches(ctx *gin.Context) {
	username, ok := chatUsername(ctx)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultMatchLimit)))
	if err != nil || limit <= 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_LIMIT", "limit参数必须是正整数")
		return
	}

	matches, err := c.InsightsUsecase.TasteMatches(ctx.Request.Context(), username, limit)
	if err != nil {
		switch {
		case errors.Is(err, game_interface.ErrSessionNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "先玩几轮游戏再来找同好吧")
		case errors.Is(err, chat_models.ErrNoMatch):
			controller.ErrorResponse(ctx, http.StatusNotFound, "NO_MATCH", "暂时没有口味相近的听众")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	controller.SuccessResponse(ctx, "matches", matches, len(matches))
}
