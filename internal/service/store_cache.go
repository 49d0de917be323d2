package service

import (
	"context"

	"github.com/ldc-store/internal/cache"
	"github.com/ldc-store/internal/logger"
)

// invalidateStoreCache 店面数据变更后整体失效店面缓存，失败只告警不阻断写操作。
func invalidateStoreCache(op string) {
	if err := cache.InvalidateStore(context.Background()); err != nil {
		logger.Warnw("store_cache_invalidate_failed", "op", op, "error", err)
	}
}
