package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library-inventory/internal/domain/book"
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

// kvClient BookCache用到的Redis命令子集(*redis.Client满足该接口)
type kvClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// BookCache 图书视图缓存(Cache-Aside)
//
// 教学要点：
// 1. 读：先查缓存，未命中再查数据库并回填
// 2. 写：更新数据库后删除缓存（不更新缓存，避免并发写导致脏数据）
// 3. Key设计：library:book:{barcode}
// 4. 缓存值带version，命中后由用例和数据库中的修订比对，删除失败或回填竞争留下的旧值不会被返回
type BookCache struct {
	client kvClient
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client kvClient, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// cachedBook 缓存中的JSON结构
type cachedBook struct {
	ID            uint      `json:"id"`
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	Author        string    `json:"author"`
	PublishedDate string    `json:"publishedDate"`
	Genre         string    `json:"genre"`
	Quantity      *int      `json:"quantity,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Version       uint      `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func bookKey(barcode string) string {
	return "library:book:" + barcode
}

// Get 获取缓存，未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, barcode string) (*book.Book, error) {
	val, err := c.client.Get(ctx, bookKey(barcode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "读取图书缓存失败")
	}

	var cb cachedBook
	if err := json.Unmarshal([]byte(val), &cb); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "图书缓存格式错误")
	}

	return &book.Book{
		ID:            cb.ID,
		Barcode:       cb.Barcode,
		Name:          cb.Name,
		Author:        cb.Author,
		PublishedDate: cb.PublishedDate,
		Genre:         cb.Genre,
		Quantity:      cb.Quantity,
		Location:      cb.Location,
		Version:       cb.Version,
		CreatedAt:     cb.CreatedAt,
		UpdatedAt:     cb.UpdatedAt,
	}, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(cachedBook{
		ID:            b.ID,
		Barcode:       b.Barcode,
		Name:          b.Name,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
		Quantity:      b.Quantity,
		Location:      b.Location,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}

	if err := c.client.Set(ctx, bookKey(b.Barcode), val, c.ttl).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "写入图书缓存失败")
	}
	return nil
}

// Delete 删除缓存(用于Modify/Delete/Rack/Lend之后)
func (c *BookCache) Delete(ctx context.Context, barcode string) error {
	if err := c.client.Del(ctx, bookKey(barcode)).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "删除图书缓存失败")
	}
	return nil
}
