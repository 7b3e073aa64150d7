package scene_admin_api_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/usecase"
)

// AdminController 运维侧接口：账号巡查与参考向量表维护
type AdminController struct {
	UserUsecase        usecase.BaseUsecase[auth_models.User]
	VectorTableUsecase usecase.ConfigUsecase[taste_models.VectorTable]
}

func NewAdminController(
	userUsecase usecase.BaseUsecase[auth_models.User],
	vectorTableUsecase usecase.ConfigUsecase[taste_models.VectorTable],
) *AdminController {
	return &AdminController{
		UserUsecase:        userUsecase,
		VectorTableUsecase: vectorTableUsecase,
	}
}

func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	users, total, err := c.UserUsecase.GetPaginated(ctx.Request.Context(), page, pageSize)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "users", users, int(total))
}

func (c *AdminController) GetVectorTable(ctx *gin.Context) {
	table, err := c.VectorTableUsecase.Get(ctx.Request.Context())
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusNotFound, "TABLE_NOT_FOUND", "参考向量表尚未初始化")
		return
	}

	controller.SuccessResponse(ctx, "vector_table", table, 1)
}

func (c *AdminController) UpdateVectorTable(ctx *gin.Context) {
	var table taste_models.VectorTable
	if err := ctx.ShouldBindJSON(&table); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if len(table.Moods) == 0 && len(table.Genres) == 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", "向量表不能为空")
		return
	}

	if err := c.VectorTableUsecase.Update(ctx.Request.Context(), &table); err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "vector_table", table, 1)
}
