package cache

import (
	"context"
	"fmt"
	"time"
)

const storeKeyPrefix = "store"

// StoreConfigKey 店面站点配置缓存键
func StoreConfigKey() string {
	return storeKeyPrefix + ":config"
}

// StoreCategoriesKey 店面分类列表缓存键
func StoreCategoriesKey() string {
	return storeKeyPrefix + ":categories"
}

// StoreProductsKey 店面商品列表缓存键
func StoreProductsKey(categoryID, page, pageSize int) string {
	return fmt.Sprintf("%s:products:%d:%d:%d", storeKeyPrefix, categoryID, page, pageSize)
}

// StoreProductKey 店面商品详情缓存键
func StoreProductKey(slug string) string {
	return fmt.Sprintf("%s:product:%s", storeKeyPrefix, slug)
}

// GetStoreJSON 读取店面缓存
func GetStoreJSON(ctx context.Context, key string, dest interface{}) bool {
	hit, err := GetJSON(ctx, key, dest)
	if err != nil {
		return false
	}
	return hit
}

// SetStoreJSON 写入店面缓存
func SetStoreJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	_ = SetJSON(ctx, key, value, ttl)
}

// InvalidateStore 失效全部店面缓存
// 系统设置或商品目录的任何后台写入都会触发。
func InvalidateStore(ctx context.Context) error {
	return DelByPrefix(ctx, storeKeyPrefix)
}
