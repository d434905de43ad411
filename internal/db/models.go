package db

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OpenID    string    `gorm:"size:64;uniqueIndex" json:"open_id"` // 微信openid
	Nickname  string    `gorm:"size:32" json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Plant 用户植物表
// name: 同一用户内植物名称唯一，命令按名称查找
// type: 植物类型（绿植/多肉/花卉/其他）
type Plant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_name,unique" json:"user_id"`
	Name      string    `gorm:"size:64;index:idx_user_name,unique" json:"name"`
	Type      string    `gorm:"size:32" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CareRecord 养护记录表
// type: water/fertilize
// note: 可选备注，记录后不可修改
type CareRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlantID   uint      `gorm:"index" json:"plant_id"`
	Type      string    `gorm:"size:16" json:"type"`
	Note      string    `gorm:"size:256" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Consultation AI咨询记录表
type Consultation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription 模板消息订阅授权表
// is_auth: 微信订阅消息是一次性的，发送后置为false等待重新授权
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex" json:"user_id"`
	User      User      `json:"user"`
	IsAuth    bool      `json:"is_auth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
