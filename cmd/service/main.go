// @title        North Trips API
// @version      1.0
// @description  North Trips and Travel 行程預訂服務的後端 API 文件
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"github.com/sirupsen/logrus"

	_ "north-trips/docs" // 引入 swag 產出的 docs
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("service exited")
		exitFunc(1)
	}
}
