package route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/middleware"
	"github.com/soundsage/backend/api/route/route_discovery/scene_admin_api_route"
	"github.com/soundsage/backend/api/route/route_discovery/scene_auth_api_route"
	"github.com/soundsage/backend/api/route/route_discovery/scene_catalog_api_route"
	"github.com/soundsage/backend/api/route/route_discovery/scene_chat_api_route"
	"github.com/soundsage/backend/api/route/route_discovery/scene_game_api_route"
	"github.com/soundsage/backend/bootstrap"
	"github.com/soundsage/backend/cache"
	"github.com/soundsage/backend/mongo"
)

// Setup 注册全部路由
// 曲库浏览与注册登录公开，游戏和推荐需要访问令牌
func Setup(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	store cache.Store,
	gin *gin.Engine,
) {
	publicRouter := gin.Group("")
	scene_auth_api_route.NewAuthRouter(env, timeout, db, publicRouter)
	scene_catalog_api_route.NewCatalogRouter(timeout, db, publicRouter)

	protectedRouter := gin.Group("")
	protectedRouter.Use(middleware.JwtAuthMiddleware(env.AccessTokenSecret))
	scene_game_api_route.NewGameRouter(env, timeout, db, protectedRouter)
	scene_chat_api_route.NewChatRouter(env, timeout, db, store, protectedRouter)
	scene_admin_api_route.NewAdminRouter(timeout, db, protectedRouter)
}
