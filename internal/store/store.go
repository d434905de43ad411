package store

import (
	"errors"
	"time"
)

// 养护类型
const (
	CareWater     = "water"
	CareFertilize = "fertilize"
)

var (
	ErrPlantExists   = errors.New("plant already exists")
	ErrPlantNotFound = errors.New("plant not found")
)

// CareRecord 一条养护记录，创建后不可修改
type CareRecord struct {
	Type      string    `json:"type"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Plant 用户的一棵植物，Records 按插入顺序保存
type Plant struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Records   []CareRecord `json:"records"`
}

// LastCareAt 返回指定类型最近一次养护时间，没有则返回零值
func (p *Plant) LastCareAt(careType string) (time.Time, bool) {
	for i := len(p.Records) - 1; i >= 0; i-- {
		if p.Records[i].Type == careType {
			return p.Records[i].CreatedAt, true
		}
	}
	return time.Time{}, false
}

// User 微信用户，按openid唯一
type User struct {
	OpenID    string    `json:"open_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPlantStore 用户植物数据的读写接口
// 实现方必须保证同一openid的并发写不会互相覆盖
type UserPlantStore interface {
	// GetUser 获取用户，不存在时自动创建
	GetUser(openid string) (*User, error)
	// AddPlant 添加植物，同名植物已存在时返回 ErrPlantExists
	AddPlant(openid, name, plantType string) (*Plant, error)
	// RemovePlant 删除植物，不存在时返回 ErrPlantNotFound
	RemovePlant(openid, name string) error
	// AddCareRecord 追加养护记录，植物不存在时返回 ErrPlantNotFound
	AddCareRecord(openid, plantName, careType, note string) (*CareRecord, error)
	// GetPlantDetail 按名称查找植物（带全部养护记录），不存在时返回 ErrPlantNotFound
	GetPlantDetail(openid, name string) (*Plant, error)
	// ListPlants 按添加顺序返回用户全部植物（带养护记录）
	ListPlants(openid string) ([]Plant, error)
}
