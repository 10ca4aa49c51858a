package book

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// fakeCache 内存缓存,failGet/failDelete模拟Redis故障
type fakeCache struct {
	mu         sync.Mutex
	items      map[string]*book.Book
	gets       int
	deleted    []string
	failGet    bool
	failDelete bool
	// beforeSet 在下一次Set写入前执行一次(模拟查库与回填之间插入的写操作)
	beforeSet func()
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]*book.Book)}
}

func (c *fakeCache) Get(_ context.Context, barcode string) (*book.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, errors.New("redis: connection refused")
	}
	return c.items[barcode], nil
}

func (c *fakeCache) Set(_ context.Context, b *book.Book) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[b.Barcode] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, barcode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, barcode)
	if c.failDelete {
		return errors.New("redis: connection refused")
	}
	delete(c.items, barcode)
	return nil
}

// fakePublisher 记录发布的事件
type fakePublisher struct {
	mu     sync.Mutex
	events []port.InventoryEvent
	fail   bool
}

func (p *fakePublisher) Publish(_ context.Context, event port.InventoryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("amqp: channel closed")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	repo      book.Repository
	service   book.Service
	cache     *fakeCache
	publisher *fakePublisher
	effects   *port.SideEffects
}

// newFixture sqlite内存库 + 真实GORM仓储 + 假缓存/发布者
func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.AutoMigrate(db))

	repo := mysql.NewBookRepository(db)
	cache := newFakeCache()
	publisher := &fakePublisher{}
	return &fixture{
		db:        db,
		repo:      repo,
		service:   book.NewService(repo),
		cache:     cache,
		publisher: publisher,
		effects:   port.NewSideEffects(cache, publisher, logger.Nop()),
	}
}

func (f *fixture) add(t *testing.T, barcode string) {
	t.Helper()
	_, err := NewAddBookUseCase(f.service, f.effects).Execute(context.Background(), AddBookRequest{
		Barcode:       barcode,
		Name:          "Name " + barcode,
		Author:        "Author",
		PublishedDate: "2020-01-01",
	})
	require.NoError(t, err)
}

func (f *fixture) rack(t *testing.T, barcode, location string, quantity int) {
	t.Helper()
	require.NoError(t, f.service.ApplyRack(context.Background(), barcode, location, quantity))
}
