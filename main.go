package main

import (
	"plantcare-backend/internal/db"
	"plantcare-backend/internal/logic"
	"plantcare-backend/internal/store"
)

func main() {
	cfg := LoadConfig()
	cfg.Print()

	db.InitDB()

	// 启动浇水提醒定时任务
	logic.StartScheduler()

	// 启动Gin路由
	router := logic.SetupRouter(store.NewGormStore())
	router.Run(":" + cfg.Port)
}
