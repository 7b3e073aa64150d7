package bootstrap

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/mongo"
)

func NewMongoDatabase(env *Env) mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.DBUri)
	if err != nil {
		logrus.WithError(err).Fatal("MongoDB客户端初始化失败")
	}

	if err := client.Connect(ctx); err != nil {
		logrus.WithError(err).Fatal("MongoDB连接失败")
	}

	if err := client.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("MongoDB探活失败")
	}

	return client
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}

	if err := client.Disconnect(context.TODO()); err != nil {
		logrus.WithError(err).Error("MongoDB断开连接失败")
		return
	}

	logrus.Info("MongoDB连接已关闭")
}
