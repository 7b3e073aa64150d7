package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/api/route"
	"github.com/soundsage/backend/bootstrap"
	"github.com/soundsage/backend/cache"
	"github.com/soundsage/backend/mongo"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := bootstrap.App()
	env := app.Env
	defer app.CloseDBConnection()

	db := app.Mongo.Database(env.DBName)
	mongo.CreateIndexes(db)

	store := cache.NewRedisStore(app.Redis)
	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.Default()
	route.Setup(env, timeout, db, store, engine)

	logrus.WithField("address", env.ServerAddress).Info("服务启动")
	if err := engine.Run(env.ServerAddress); err != nil {
		logrus.WithError(err).Fatal("服务退出")
	}
}
