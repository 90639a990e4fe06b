// store/persist.go
package store

import (
	"encoding/json"
	"fmt"

	"job_search_go/repository"

	log "github.com/sirupsen/logrus"
)

// 各 store 的本地快照键，互相独立写入，没有跨 store 事务
const (
	StorageKeyAuth   = "auth-storage"
	StorageKeySearch = "search-storage"
	StorageKeyJob    = "job-storage"
	StorageKeyUser   = "user-storage"
	StorageKeyUI     = "ui-storage"
)

// loadSnapshot 读取并反序列化本地快照，快照不存在时返回 false
// 读取失败只记日志不中断：快照可以从后端重建
func loadSnapshot(repo repository.StorageRepository, key string, out any) bool {
	data, err := repo.Load(key)
	if err != nil {
		log.Warnf("读取本地快照失败 key=%s: %v", key, err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warnf("解析本地快照失败 key=%s: %v", key, err)
		return false
	}
	return true
}

// saveSnapshot 序列化并写入本地快照
// 写入失败只记日志：持久化是尽力而为的侧写，不阻塞状态变更
func saveSnapshot(repo repository.StorageRepository, key string, in any) {
	data, err := json.Marshal(in)
	if err != nil {
		log.Warnf("序列化本地快照失败 key=%s: %v", key, err)
		return
	}
	if err := repo.Save(key, data); err != nil {
		log.Warnf("写入本地快照失败 key=%s: %v", key, err)
	}
}

// ResetAllStorage 全局重置：删除全部五个快照键
func ResetAllStorage(repo repository.StorageRepository) error {
	keys := []string{
		StorageKeyAuth,
		StorageKeySearch,
		StorageKeyJob,
		StorageKeyUser,
		StorageKeyUI,
	}
	for _, key := range keys {
		if err := repo.Delete(key); err != nil {
			return fmt.Errorf("删除快照失败 key=%s: %v", key, err)
		}
	}
	log.Info("本地快照已全部清除")
	return nil
}
