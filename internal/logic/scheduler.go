package logic

import (
	"log"
	"time"

	"plantcare-backend/internal/db"
)

// 超过7天没浇水触发提醒
const reminderAfterDays = 7

// CheckAndSendCareReminders 检查植物浇水状态并发送提醒
func CheckAndSendCareReminders() {
	log.Println("开始检查植物浇水状态...")

	if db.GetDB() == nil {
		log.Println("数据库未初始化，跳过浇水提醒检查")
		return
	}

	// 获取所有已授权订阅的用户
	var subscriptions []db.Subscription
	if err := db.GetDB().Preload("User").Where("is_auth = ?", true).
		Find(&subscriptions).Error; err != nil {
		log.Printf("获取订阅用户列表失败: %v", err)
		return
	}

	reminderCount := 0
	successCount := 0

	for _, subscription := range subscriptions {
		user := subscription.User

		plantName, days, ok := findThirstyPlant(user.ID)
		if !ok {
			continue
		}

		reminderCount++
		if err := SendCareReminder(user.OpenID, plantName, days); err != nil {
			log.Printf("发送提醒给用户 %s 失败: %v", user.OpenID, err)
			// 发送失败视为取消订阅，更新状态
			subscription.IsAuth = false
			db.GetDB().Save(&subscription)
			continue
		}
		successCount++
		log.Printf("成功发送浇水提醒给用户: %s", user.OpenID)

		// 微信订阅消息是一次性的，发送后需要重新授权
		subscription.IsAuth = false
		db.GetDB().Save(&subscription)
	}

	log.Printf("浇水提醒检查完成: 需要提醒 %d 人，成功发送 %d 人", reminderCount, successCount)
}

// findThirstyPlant 找出用户第一棵超过7天没浇水的植物
func findThirstyPlant(userID uint) (string, int, bool) {
	var plants []db.Plant
	if err := db.GetDB().Where("user_id = ?", userID).Find(&plants).Error; err != nil {
		log.Printf("获取用户 %d 植物列表失败: %v", userID, err)
		return "", 0, false
	}

	now := time.Now()
	for _, plant := range plants {
		var last db.CareRecord
		err := db.GetDB().
			Where("plant_id = ? AND type = ?", plant.ID, "water").
			Order("id desc").First(&last).Error

		since := plant.CreatedAt
		if err == nil {
			since = last.CreatedAt
		}
		days := int(now.Sub(since).Hours() / 24)
		if days >= reminderAfterDays {
			return plant.Name, days, true
		}
	}
	return "", 0, false
}

// StartScheduler 启动定时任务，每天20:30检查一次
func StartScheduler() {
	log.Println("启动定时任务调度器...")

	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 20, 30, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}

			sleepDuration := next.Sub(now)
			log.Printf("下次浇水提醒检查时间: %s (等待 %v)", next.Format("2006-01-02 15:04:05"), sleepDuration)
			time.Sleep(sleepDuration)

			CheckAndSendCareReminders()
		}
	}()
}
