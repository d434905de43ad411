package store

import (
	"hash/fnv"
	"sync"
	"time"
)

const memoryShards = 16

// MemoryStore 内存实现，用于测试和无数据库的快速部署
// 写操作按openid分片加锁，保证同一用户的并发写串行执行
type MemoryStore struct {
	shards [memoryShards]sync.Mutex
	mu     sync.RWMutex
	users  map[string]*memoryUser
	now    func() time.Time
}

type memoryUser struct {
	user   User
	plants []*Plant
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*memoryUser),
		now:   time.Now,
	}
}

// SetNowFunc 替换时钟，仅用于测试
func (s *MemoryStore) SetNowFunc(now func() time.Time) {
	s.now = now
}

func (s *MemoryStore) lock(openid string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(openid))
	return &s.shards[h.Sum32()%memoryShards]
}

func (s *MemoryStore) getOrCreate(openid string) *memoryUser {
	s.mu.RLock()
	u, ok := s.users[openid]
	s.mu.RUnlock()
	if ok {
		return u
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok = s.users[openid]; ok {
		return u
	}
	u = &memoryUser{user: User{OpenID: openid, CreatedAt: s.now()}}
	s.users[openid] = u
	return u
}

func (s *MemoryStore) GetUser(openid string) (*User, error) {
	u := s.getOrCreate(openid)
	copied := u.user
	return &copied, nil
}

func (s *MemoryStore) AddPlant(openid, name, plantType string) (*Plant, error) {
	mu := s.lock(openid)
	mu.Lock()
	defer mu.Unlock()

	u := s.getOrCreate(openid)
	for _, p := range u.plants {
		if p.Name == name {
			return nil, ErrPlantExists
		}
	}
	p := &Plant{Name: name, Type: plantType, CreatedAt: s.now()}
	u.plants = append(u.plants, p)
	return copyPlant(p), nil
}

func (s *MemoryStore) RemovePlant(openid, name string) error {
	mu := s.lock(openid)
	mu.Lock()
	defer mu.Unlock()

	u := s.getOrCreate(openid)
	for i, p := range u.plants {
		if p.Name == name {
			u.plants = append(u.plants[:i], u.plants[i+1:]...)
			return nil
		}
	}
	return ErrPlantNotFound
}

func (s *MemoryStore) AddCareRecord(openid, plantName, careType, note string) (*CareRecord, error) {
	mu := s.lock(openid)
	mu.Lock()
	defer mu.Unlock()

	u := s.getOrCreate(openid)
	for _, p := range u.plants {
		if p.Name == plantName {
			rec := CareRecord{Type: careType, Note: note, CreatedAt: s.now()}
			p.Records = append(p.Records, rec)
			return &rec, nil
		}
	}
	return nil, ErrPlantNotFound
}

func (s *MemoryStore) GetPlantDetail(openid, name string) (*Plant, error) {
	mu := s.lock(openid)
	mu.Lock()
	defer mu.Unlock()

	u := s.getOrCreate(openid)
	for _, p := range u.plants {
		if p.Name == name {
			return copyPlant(p), nil
		}
	}
	return nil, ErrPlantNotFound
}

func (s *MemoryStore) ListPlants(openid string) ([]Plant, error) {
	mu := s.lock(openid)
	mu.Lock()
	defer mu.Unlock()

	u := s.getOrCreate(openid)
	plants := make([]Plant, 0, len(u.plants))
	for _, p := range u.plants {
		plants = append(plants, *copyPlant(p))
	}
	return plants, nil
}

func copyPlant(p *Plant) *Plant {
	copied := *p
	copied.Records = make([]CareRecord, len(p.Records))
	copy(copied.Records, p.Records)
	return &copied
}
