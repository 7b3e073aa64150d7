package scene_auth_api_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_auth_usecase"
)

type AuthController struct {
	AuthUsecase *scene_auth_usecase.AuthUsecase
}

func NewAuthController(authUsecase *scene_auth_usecase.AuthUsecase) *AuthController {
	return &AuthController{
		AuthUsecase: authUsecase,
	}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var request auth_models.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	response, err := c.AuthUsecase.Signup(ctx.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, scene_auth_usecase.ErrAccountExists) {
			controller.ErrorResponse(ctx, http.StatusConflict, "ACCOUNT_EXISTS", "用户名或邮箱已被注册")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "auth", response, 1)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var request auth_models.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	response, err := c.AuthUsecase.Login(ctx.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, scene_auth_usecase.ErrInvalidCredentials) {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "INVALID_CREDENTIALS", "账号或密码不正确")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "auth", response, 1)
}

func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request auth_models.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	response, err := c.AuthUsecase.RefreshToken(ctx.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, scene_auth_usecase.ErrInvalidCredentials) {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "INVALID_CREDENTIALS", "刷新令牌无效或已过期")
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "auth", response, 1)
}
