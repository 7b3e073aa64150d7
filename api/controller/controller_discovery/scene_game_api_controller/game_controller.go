package scene_game_api_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_catalog_usecase"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_game_usecase"
)

// leaderboardSize 终局返回的热门榜长度
const leaderboardSize = 5

type GameController struct {
	GameUsecase *scene_game_usecase.GameSessionUsecase
	SongUsecase *scene_catalog_usecase.SongUsecase
}

func NewGameController(
	gameUsecase *scene_game_usecase.GameSessionUsecase,
	songUsecase *scene_catalog_usecase.SongUsecase,
) *GameController {
	return &GameController{
		GameUsecase: gameUsecase,
		SongUsecase: songUsecase,
	}
}

func sessionUsername(ctx *gin.Context) (string, bool) {
	username := ctx.GetString("x-username")
	if username == "" {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "无法识别当前用户")
		return "", false
	}
	return username, true
}

func (c *GameController) StartSession(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	session, err := c.GameUsecase.StartSession(ctx.Request.Context(), username)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "session", session, 1)
}

func (c *GameController) GetSession(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	session, err := c.GameUsecase.CurrentSession(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, game_interface.ErrSessionNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "当前用户还没有游戏会话")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "session", session, 1)
}

func (c *GameController) FetchSongPair(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	language := ctx.DefaultQuery("language", "English")

	pair, err := c.GameUsecase.FetchSongPair(ctx.Request.Context(), username, language)
	if err != nil {
		switch {
		case errors.Is(err, game_interface.ErrSessionNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "请先开始一局游戏")
		case errors.Is(err, catalog_interface.ErrSongNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "NO_SONGS", "曲库中没有足够的候选歌曲")
		case errors.Is(err, game_interface.ErrVersionConflict):
			controller.ErrorResponse(ctx, http.StatusConflict, "CONFLICT", "会话正被其他请求修改，请重试")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	controller.SuccessResponse(ctx, "pair", pair, 2)
}

func (c *GameController) ApplyRound(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	var request struct {
		ChosenID string   `json:"chosen_id" binding:"required"`
		Moods    []string `json:"moods"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := c.GameUsecase.ApplyRound(ctx.Request.Context(), username, request.ChosenID, request.Moods)
	if err != nil {
		switch {
		case errors.Is(err, game_interface.ErrSessionNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "请先开始一局游戏")
		case errors.Is(err, catalog_interface.ErrSongNotFound):
			controller.ErrorResponse(ctx, http.StatusNotFound, "SONG_NOT_FOUND", "所选歌曲不存在")
		case errors.Is(err, game_interface.ErrVersionConflict):
			controller.ErrorResponse(ctx, http.StatusConflict, "CONFLICT", "会话正被其他请求修改，请重试")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	response := gin.H{"round": result}
	if result.Completed {
		// 终局附带热门榜，榜单取不到不影响本轮结果
		leaderboard, lbErr := c.SongUsecase.TopPicked(ctx.Request.Context(), "", leaderboardSize)
		if lbErr == nil {
			response["leaderboard"] = leaderboard
		}
	}

	controller.SuccessResponse(ctx, "result", response, 1)
}

func (c *GameController) HistoricalFavorites(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	favorites, err := c.GameUsecase.HistoricalFavorites(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, game_interface.ErrSessionNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "当前用户还没有游戏会话")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "favorites", favorites, len(favorites))
}

func (c *GameController) MoodTimeline(ctx *gin.Context) {
	username, ok := sessionUsername(ctx)
	if !ok {
		return
	}

	timeline, err := c.GameUsecase.MoodTimeline(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, game_interface.ErrSessionNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "SESSION_NOT_FOUND", "当前用户还没有游戏会话")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "mood_history", timeline, len(timeline))
}
