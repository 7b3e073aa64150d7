package scene_admin_api_route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller/controller_discovery/scene_admin_api_controller"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository"
	"github.com/soundsage/backend/usecase"
)

func NewAdminRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	userRepo := repository.NewBaseMongoRepository[auth_models.User](db, domain.CollectionUser)
	vectorTableRepo := repository.NewConfigMongoRepository[taste_models.VectorTable](db, domain.CollectionVectorTable)

	userUsecase := usecase.NewBaseUsecase[auth_models.User](userRepo, timeout)
	vectorTableUsecase := usecase.NewConfigUsecase[taste_models.VectorTable](vectorTableRepo, timeout)

	adminCtrl := scene_admin_api_controller.NewAdminController(userUsecase, vectorTableUsecase)

	adminGroup := group.Group("/admin")
	{
		adminGroup.GET("/users", adminCtrl.ListUsers)
		adminGroup.GET("/vector_table", adminCtrl.GetVectorTable)
		adminGroup.PUT("/vector_table", adminCtrl.UpdateVectorTable)
	}
}
