package store

import (
	"errors"

	"gorm.io/gorm"

	"plantcare-backend/internal/db"
)

// GormStore MySQL实现，依赖 db.InitDB 已完成初始化
// 养护记录是单条INSERT，天然不会丢写；植物的增删在事务内完成
type GormStore struct {
	conn *gorm.DB
}

func NewGormStore() *GormStore {
	return &GormStore{conn: db.GetDB()}
}

func (s *GormStore) getOrCreateUser(tx *gorm.DB, openid string) (*db.User, error) {
	var user db.User
	err := tx.Where("open_id = ?", openid).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = db.User{OpenID: openid}
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, err
}

func (s *GormStore) GetUser(openid string) (*User, error) {
	user, err := s.getOrCreateUser(s.conn, openid)
	if err != nil {
		return nil, err
	}
	return &User{OpenID: user.OpenID, CreatedAt: user.CreatedAt}, nil
}

func (s *GormStore) AddPlant(openid, name, plantType string) (*Plant, error) {
	var created *Plant
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		user, err := s.getOrCreateUser(tx, openid)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&db.Plant{}).
			Where("user_id = ? AND name = ?", user.ID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPlantExists
		}
		plant := db.Plant{UserID: user.ID, Name: name, Type: plantType}
		// 并发添加可能越过上面的计数检查，唯一索引冲突同样按已存在处理
		if err := tx.Create(&plant).Error; err != nil {
			return translatePlantError(err)
		}
		created = &Plant{Name: plant.Name, Type: plant.Type, CreatedAt: plant.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *GormStore) RemovePlant(openid, name string) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		plant, err := s.findPlant(tx, openid, name)
		if err != nil {
			return err
		}
		if err := tx.Where("plant_id = ?", plant.ID).Delete(&db.CareRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(plant).Error
	})
}

func (s *GormStore) AddCareRecord(openid, plantName, careType, note string) (*CareRecord, error) {
	plant, err := s.findPlant(s.conn, openid, plantName)
	if err != nil {
		return nil, err
	}
	rec := db.CareRecord{PlantID: plant.ID, Type: careType, Note: note}
	if err := s.conn.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &CareRecord{Type: rec.Type, Note: rec.Note, CreatedAt: rec.CreatedAt}, nil
}

func (s *GormStore) GetPlantDetail(openid, name string) (*Plant, error) {
	plant, err := s.findPlant(s.conn, openid, name)
	if err != nil {
		return nil, err
	}
	return s.loadPlant(plant)
}

func (s *GormStore) ListPlants(openid string) ([]Plant, error) {
	user, err := s.getOrCreateUser(s.conn, openid)
	if err != nil {
		return nil, err
	}
	var rows []db.Plant
	if err := s.conn.Where("user_id = ?", user.ID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	plants := make([]Plant, 0, len(rows))
	for i := range rows {
		p, err := s.loadPlant(&rows[i])
		if err != nil {
			return nil, err
		}
		plants = append(plants, *p)
	}
	return plants, nil
}

// translatePlantError 把唯一索引冲突映射为 ErrPlantExists
func translatePlantError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPlantExists
	}
	return err
}

func (s *GormStore) findPlant(tx *gorm.DB, openid, name string) (*db.Plant, error) {
	user, err := s.getOrCreateUser(tx, openid)
	if err != nil {
		return nil, err
	}
	var plant db.Plant
	err = tx.Where("user_id = ? AND name = ?", user.ID, name).First(&plant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func (s *GormStore) loadPlant(row *db.Plant) (*Plant, error) {
	var recs []db.CareRecord
	if err := s.conn.Where("plant_id = ?", row.ID).Order("id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	p := &Plant{Name: row.Name, Type: row.Type, CreatedAt: row.CreatedAt}
	for _, r := range recs {
		p.Records = append(p.Records, CareRecord{Type: r.Type, Note: r.Note, CreatedAt: r.CreatedAt})
	}
	return p, nil
}
