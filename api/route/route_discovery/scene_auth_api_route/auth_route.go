package scene_auth_api_route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller/controller_discovery/scene_auth_api_controller"
	"github.com/soundsage/backend/bootstrap"
	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository/repository_discovery/repository_discovery_auth"
	"github.com/soundsage/backend/usecase/usecase_discovery/scene_auth_usecase"
)

func NewAuthRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	userRepo := repository_discovery_auth.NewUserRepository(db, domain.CollectionUser)

	authUsecase := scene_auth_usecase.NewAuthUsecase(
		userRepo,
		timeout,
		env.AccessTokenSecret,
		env.RefreshTokenSecret,
		env.AccessTokenExpiryHour,
		env.RefreshTokenExpiryHour,
	)

	authCtrl := scene_auth_api_controller.NewAuthController(authUsecase)

	authGroup := group.Group("/auth")
	{
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.RefreshToken)
	}
}
