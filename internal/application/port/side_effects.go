package port

import (
	"context"

	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/metrics"
)

// SideEffects 用例共享的缓存失效与事件发布
// 两者都是尽力而为：失败只记录日志
type SideEffects struct {
	Cache     BookCache
	Publisher EventPublisher
	Log       *logger.Logger
}

// NewSideEffects 创建副作用执行器，nil依赖替换为no-op实现
func NewSideEffects(cache BookCache, publisher EventPublisher, log *logger.Logger) *SideEffects {
	if cache == nil {
		cache = NoopBookCache{}
	}
	if publisher == nil {
		publisher = NoopEventPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SideEffects{Cache: cache, Publisher: publisher, Log: log}
}

// Invalidate 删除图书视图缓存
func (s *SideEffects) Invalidate(ctx context.Context, barcode string) {
	if err := s.Cache.Delete(ctx, barcode); err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "error"})
		s.Log.Warn(s.Log.WithField(ctx, "barcode", barcode), "删除图书缓存失败", err)
	}
}

// Emit 发布库存事件
func (s *SideEffects) Emit(ctx context.Context, event InventoryEvent) {
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.Log.Warn(s.Log.WithFields(ctx, map[string]any{
			"event":   event.Type,
			"barcode": event.Barcode,
		}), "发布库存事件失败", err)
	}
}
