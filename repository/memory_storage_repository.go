package repository

import (
	"sync"
)

// memoryStorageRepository 内存快照仓储
// 未配置数据库时的兜底实现，进程退出后快照丢失；测试中也用它替代真实存储
type memoryStorageRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorageRepository() StorageRepository {
	return &memoryStorageRepository{
		data: make(map[string][]byte),
	}
}

func (r *memoryStorageRepository) Load(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	// 返回副本，防止调用方修改内部状态
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

func (r *memoryStorageRepository) Save(key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	r.data[key] = cp
	return nil
}

func (r *memoryStorageRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *memoryStorageRepository) Keys() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	return keys, nil
}
