package model

import (
	"time"
)

// StorageEntity 本地快照实体类
// 每个 store 以独立的 key 写入各自的局部状态快照（JSON），互不加锁、互不事务
type StorageEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	StoreKey  string    `gorm:"column:store_key;uniqueIndex"` // 快照键（auth-storage/job-storage/...）
	Value     string    `gorm:"column:value;type:longtext"`   // JSON 快照内容
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StorageEntity) TableName() string {
	return "storage"
}
