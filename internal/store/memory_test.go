package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 用户首次访问自动创建
func TestGetUserAutoCreate(t *testing.T) {
	s := NewMemoryStore()
	user, err := s.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.OpenID)
	assert.False(t, user.CreatedAt.IsZero())

	again, err := s.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, user.CreatedAt, again.CreatedAt)
}

// 添加与查询植物
func TestAddAndGetPlant(t *testing.T) {
	s := NewMemoryStore()
	plant, err := s.AddPlant("u1", "绿萝", "绿植")
	assert.NoError(t, err)
	assert.Equal(t, "绿萝", plant.Name)
	assert.Equal(t, "绿植", plant.Type)

	got, err := s.GetPlantDetail("u1", "绿萝")
	assert.NoError(t, err)
	assert.Equal(t, "绿萝", got.Name)

	_, err = s.GetPlantDetail("u1", "仙人掌")
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

// 同名植物不能重复添加
func TestAddPlantDuplicate(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.AddPlant("u1", "绿萝", "绿植")
	assert.NoError(t, err)
	_, err = s.AddPlant("u1", "绿萝", "多肉")
	assert.ErrorIs(t, err, ErrPlantExists)

	// 不同用户不受影响
	_, err = s.AddPlant("u2", "绿萝", "绿植")
	assert.NoError(t, err)
}

// 删除植物
func TestRemovePlant(t *testing.T) {
	s := NewMemoryStore()
	s.AddPlant("u1", "绿萝", "绿植")

	assert.NoError(t, s.RemovePlant("u1", "绿萝"))
	assert.ErrorIs(t, s.RemovePlant("u1", "绿萝"), ErrPlantNotFound)

	_, err := s.GetPlantDetail("u1", "绿萝")
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

// 养护记录按插入顺序保存
func TestAddCareRecordOrder(t *testing.T) {
	s := NewMemoryStore()
	s.AddPlant("u1", "绿萝", "绿植")

	for i := 1; i <= 3; i++ {
		rec, err := s.AddCareRecord("u1", "绿萝", CareWater, fmt.Sprintf("第%d次", i))
		assert.NoError(t, err)
		assert.Equal(t, CareWater, rec.Type)
	}
	_, err := s.AddCareRecord("u1", "仙人掌", CareWater, "")
	assert.ErrorIs(t, err, ErrPlantNotFound)

	plant, err := s.GetPlantDetail("u1", "绿萝")
	assert.NoError(t, err)
	assert.Len(t, plant.Records, 3)
	assert.Equal(t, "第1次", plant.Records[0].Note)
	assert.Equal(t, "第3次", plant.Records[2].Note)
}

// 最近养护时间按类型从尾部扫描
func TestLastCareAt(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	clock := base
	s.SetNowFunc(func() time.Time { return clock })

	s.AddPlant("u1", "绿萝", "绿植")
	s.AddCareRecord("u1", "绿萝", CareWater, "")
	clock = base.Add(time.Hour)
	s.AddCareRecord("u1", "绿萝", CareFertilize, "")
	clock = base.Add(2 * time.Hour)
	s.AddCareRecord("u1", "绿萝", CareWater, "")

	plant, _ := s.GetPlantDetail("u1", "绿萝")
	at, ok := plant.LastCareAt(CareWater)
	assert.True(t, ok)
	assert.Equal(t, base.Add(2*time.Hour), at)

	at, ok = plant.LastCareAt(CareFertilize)
	assert.True(t, ok)
	assert.Equal(t, base.Add(time.Hour), at)

	empty := &Plant{}
	_, ok = empty.LastCareAt(CareWater)
	assert.False(t, ok)
}

// 植物列表按添加顺序
func TestListPlants(t *testing.T) {
	s := NewMemoryStore()
	plants, err := s.ListPlants("u1")
	assert.NoError(t, err)
	assert.Empty(t, plants)

	s.AddPlant("u1", "绿萝", "绿植")
	s.AddPlant("u1", "玉露", "多肉")

	plants, err = s.ListPlants("u1")
	assert.NoError(t, err)
	assert.Len(t, plants, 2)
	assert.Equal(t, "绿萝", plants[0].Name)
	assert.Equal(t, "玉露", plants[1].Name)
}

// 返回值是副本，外部修改不影响存储
func TestReturnedPlantIsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.AddPlant("u1", "绿萝", "绿植")
	s.AddCareRecord("u1", "绿萝", CareWater, "原始备注")

	plant, _ := s.GetPlantDetail("u1", "绿萝")
	plant.Records[0].Note = "被改掉了"
	plant.Name = "别的名字"

	again, _ := s.GetPlantDetail("u1", "绿萝")
	assert.Equal(t, "原始备注", again.Records[0].Note)
}

// 并发浇水不丢记录——针对读改写竞态的回归测试
func TestConcurrentAddCareRecord(t *testing.T) {
	s := NewMemoryStore()
	s.AddPlant("u1", "绿萝", "绿植")

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := s.AddCareRecord("u1", "绿萝", CareWater, fmt.Sprintf("第%d次", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	plant, err := s.GetPlantDetail("u1", "绿萝")
	assert.NoError(t, err)
	assert.Len(t, plant.Records, n)
}

// 并发添加不同植物
func TestConcurrentAddPlant(t *testing.T) {
	s := NewMemoryStore()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := s.AddPlant("u1", fmt.Sprintf("植物%d", i), "其他")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	plants, err := s.ListPlants("u1")
	assert.NoError(t, err)
	assert.Len(t, plants, n)
}
