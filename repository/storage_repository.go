// repository/storage_repository.go
package repository

import (
	"time"

	"job_search_go/model"

	"gorm.io/gorm"
)

// StorageRepository 本地快照仓储接口
// Load 在快照不存在时返回 (nil, nil)
type StorageRepository interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

type storageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) StorageRepository {
	return &storageRepository{db: db}
}

func (r *storageRepository) Load(key string) ([]byte, error) {
	var entity model.StorageEntity
	err := r.db.Where("store_key = ?", key).First(&entity).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(entity.Value), nil
}

func (r *storageRepository) Save(key string, value []byte) error {
	var entity model.StorageEntity
	now := time.Now()

	err := r.db.Where("store_key = ?", key).First(&entity).Error
	if err == gorm.ErrRecordNotFound {
		entity = model.StorageEntity{
			StoreKey:  key,
			Value:     string(value),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return r.db.Create(&entity).Error
	}
	if err != nil {
		return err
	}

	entity.Value = string(value)
	entity.UpdatedAt = now
	return r.db.Save(&entity).Error
}

func (r *storageRepository) Delete(key string) error {
	return r.db.Where("store_key = ?", key).Delete(&model.StorageEntity{}).Error
}

func (r *storageRepository) Keys() ([]string, error) {
	var keys []string
	err := r.db.Model(&model.StorageEntity{}).Pluck("store_key", &keys).Error
	return keys, err
}
