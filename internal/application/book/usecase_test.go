package book

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
)

func strPtr(s string) *string { return &s }

func TestAddBook(t *testing.T) {
	f := newFixture(t)
	uc := NewAddBookUseCase(f.service, f.effects)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, AddBookRequest{Barcode: " B1 ", Name: "Go", Author: "Rob", PublishedDate: "2015"})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	// 重复登记返回冲突,原记录不变
	_, err = uc.Execute(ctx, AddBookRequest{Barcode: "B1", Name: "Other"})
	assert.True(t, errors.Is(err, book.ErrBarcodeDuplicate))

	view, err := NewRetrieveBookUseCase(f.service, f.effects).Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Go", view.Name)
	assert.Equal(t, QuantityUnset, view.Quantity)
	assert.Equal(t, LocationUnassigned, view.Location)

	assert.Equal(t, []string{port.EventBookAdded}, f.publisher.types())
}

func TestAddBook_MissingBarcode(t *testing.T) {
	f := newFixture(t)

	_, err := NewAddBookUseCase(f.service, f.effects).Execute(context.Background(), AddBookRequest{Name: "Go"})
	assert.True(t, errors.Is(err, book.ErrMissingField))
	assert.Empty(t, f.publisher.types())
}

func TestRetrieveBook_CacheAside(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 3)
	uc := NewRetrieveBookUseCase(f.service, f.effects)
	ctx := context.Background()

	// 第一次未命中,回填缓存
	view, err := uc.Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Quantity)
	assert.Equal(t, "L1", view.Location)
	require.Contains(t, f.cache.items, "B1")

	// 命中时返回缓存内容(修订一致)
	f.cache.items["B1"].Name = "cached"
	view, err = uc.Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "cached", view.Name)
	assert.Equal(t, 3, view.Quantity)
}

func TestRetrieveBook_DeleteWithFailedInvalidationIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	uc := NewRetrieveBookUseCase(f.service, f.effects)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "B1")
	require.NoError(t, err)
	require.Contains(t, f.cache.items, "B1")

	f.cache.failDelete = true
	require.NoError(t, NewDeleteBookUseCase(f.service, f.effects).Execute(ctx, "B1"))
	f.cache.failDelete = false
	require.Contains(t, f.cache.items, "B1", "缓存删除失败,旧值仍在")

	_, err = uc.Execute(ctx, "B1")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
	assert.NotContains(t, f.cache.items, "B1")
}

func TestRetrieveBook_LendWithFailedInvalidationShowsNewQuantity(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 3)
	uc := NewRetrieveBookUseCase(f.service, f.effects)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "B1")
	require.NoError(t, err)

	f.cache.failDelete = true
	require.NoError(t, NewLendBookUseCase(f.service, f.effects).Execute(ctx, "B1"))
	f.cache.failDelete = false

	view, err := uc.Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Quantity)
	assert.Equal(t, 2, *f.cache.items["B1"].Quantity, "过期缓存被重新回填")
}

func TestRetrieveBook_LendBetweenReadAndBackfill(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 1)
	uc := NewRetrieveBookUseCase(f.service, f.effects)
	lend := NewLendBookUseCase(f.service, f.effects)
	ctx := context.Background()

	// 查库之后、回填之前借走最后一本
	f.cache.beforeSet = func() {
		require.NoError(t, lend.Execute(ctx, "B1"))
	}
	view, err := uc.Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Quantity)
	require.Equal(t, 1, *f.cache.items["B1"].Quantity, "回填了旧值")

	// 之后的查询不能再返回旧数量
	view, err = uc.Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Quantity)
	assert.True(t, errors.Is(lend.Execute(ctx, "B1"), book.ErrUnavailable))
}

func TestRetrieveBook_CacheErrorFallsBackToDB(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.cache.failGet = true

	view, err := NewRetrieveBookUseCase(f.service, f.effects).Execute(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, "Name B1", view.Name)
}

func TestRetrieveBook_Errors(t *testing.T) {
	f := newFixture(t)
	uc := NewRetrieveBookUseCase(f.service, f.effects)

	_, err := uc.Execute(context.Background(), "  ")
	assert.True(t, errors.Is(err, book.ErrMissingField))

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestModifyBook_KeepsInventoryFields(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 2)
	ctx := context.Background()

	err := NewModifyBookUseCase(f.service, f.effects).Execute(ctx, ModifyBookRequest{
		Barcode: "B1",
		Name:    strPtr("New Name"),
		Genre:   strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, f.cache.deleted)

	view, err := NewRetrieveBookUseCase(f.service, f.effects).Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", view.Name)
	assert.Equal(t, "Author", view.Author)
	assert.Equal(t, 2, view.Quantity)
	assert.Equal(t, "L1", view.Location)
	assert.Equal(t, []string{port.EventBookAdded, port.EventBookModified}, f.publisher.types())
}

func TestModifyBook_NoFieldsOnlyChecksExistence(t *testing.T) {
	f := newFixture(t)
	uc := NewModifyBookUseCase(f.service, f.effects)

	err := uc.Execute(context.Background(), ModifyBookRequest{Barcode: "missing"})
	assert.True(t, errors.Is(err, book.ErrBookNotFound))

	f.add(t, "B1")
	require.NoError(t, uc.Execute(context.Background(), ModifyBookRequest{Barcode: "B1"}))
	assert.Empty(t, f.cache.deleted)
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	ctx := context.Background()
	uc := NewDeleteBookUseCase(f.service, f.effects)

	require.NoError(t, uc.Execute(ctx, "B1"))
	assert.Equal(t, []string{"B1"}, f.cache.deleted)

	_, err := NewRetrieveBookUseCase(f.service, f.effects).Execute(ctx, "B1")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))

	err = uc.Execute(ctx, "B1")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestLendBook(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	ctx := context.Background()
	uc := NewLendBookUseCase(f.service, f.effects)

	// 未上架
	assert.True(t, errors.Is(uc.Execute(ctx, "B1"), book.ErrUnavailable))
	// 不存在
	assert.True(t, errors.Is(uc.Execute(ctx, "missing"), book.ErrUnavailable))

	f.rack(t, "B1", "L1", 1)
	require.NoError(t, uc.Execute(ctx, "B1"))
	assert.True(t, errors.Is(uc.Execute(ctx, "B1"), book.ErrUnavailable))

	view, err := NewRetrieveBookUseCase(f.service, f.effects).Execute(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Quantity)
}

func TestLendBook_Concurrent(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 3)
	uc := NewLendBookUseCase(f.service, f.effects)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.Execute(context.Background(), "B1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	b, err := f.repo.FindByBarcode(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, 0, *b.Quantity)
}

func TestSideEffectFailuresDoNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B1")
	f.rack(t, "B1", "L1", 1)
	f.cache.failDelete = true
	f.publisher.fail = true

	require.NoError(t, NewLendBookUseCase(f.service, f.effects).Execute(context.Background(), "B1"))
}

func TestListBooks(t *testing.T) {
	f := newFixture(t)
	for _, barcode := range []string{"B1", "B2", "B3"} {
		f.add(t, barcode)
	}
	f.rack(t, "B2", "L1", 5)

	resp, err := NewListBooksUseCase(f.service).Execute(context.Background(), ListBooksRequest{PageSize: 2, SortBy: "quantity_desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.PageSize)
	require.Len(t, resp.List, 2)
	assert.Equal(t, "B2", resp.List[0].Barcode)
	assert.Equal(t, 5, resp.List[0].Quantity)
}
