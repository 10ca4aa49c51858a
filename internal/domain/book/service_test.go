package book

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

// memRepo 内存版仓储,语义与GORM实现一致
type memRepo struct {
	mu     sync.Mutex
	books  map[string]*Book
	nextID uint
	err    error // 非nil时所有方法返回该错误
}

func newMemRepo() *memRepo {
	return &memRepo{books: make(map[string]*Book)}
}

func clone(b *Book) *Book {
	c := *b
	if b.Quantity != nil {
		q := *b.Quantity
		c.Quantity = &q
	}
	if b.Location != nil {
		l := *b.Location
		c.Location = &l
	}
	return &c
}

func (r *memRepo) FindByBarcode(_ context.Context, barcode string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[barcode]
	if !ok {
		return nil, ErrBookNotFound
	}
	return clone(b), nil
}

func (r *memRepo) Revision(_ context.Context, barcode string) (Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[barcode]
	if !ok {
		return Revision{}, ErrBookNotFound
	}
	return b.Revision(), nil
}

func (r *memRepo) Create(_ context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.books[book.Barcode]; ok {
		return ErrBarcodeDuplicate
	}
	r.nextID++
	book.ID = r.nextID
	r.books[book.Barcode] = clone(book)
	return nil
}

func (r *memRepo) UpdateFields(_ context.Context, barcode string, fields BookFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[barcode]
	if !ok {
		return ErrBookNotFound
	}
	b.ApplyFields(fields)
	return nil
}

func (r *memRepo) SetLocationAndQuantity(_ context.Context, barcode, location string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[barcode]
	if !ok {
		return ErrBookNotFound
	}
	return b.Rack(location, quantity)
}

func (r *memRepo) IncrementQuantity(_ context.Context, barcode string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[barcode]
	if !ok {
		return ErrBookNotFound
	}
	if b.Quantity == nil || *b.Quantity+delta < 0 {
		return ErrInvalidState
	}
	*b.Quantity += delta
	b.Version++
	return nil
}

func (r *memRepo) Delete(_ context.Context, barcode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[barcode]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, barcode)
	return nil
}

func (r *memRepo) List(_ context.Context, params ListParams) ([]*Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*Book
	for _, b := range r.books {
		if params.Keyword == "" || strings.Contains(b.Name, params.Keyword) {
			all = append(all, clone(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

func strPtr(s string) *string { return &s }

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("新图书未上架", func(t *testing.T) {
		svc := NewService(newMemRepo())
		b, err := svc.Add(ctx, AddParams{Barcode: " B1 ", Name: "Go语言", Author: "A", PublishedDate: "2020"})
		require.NoError(t, err)
		assert.NotZero(t, b.ID)
		assert.Equal(t, "B1", b.Barcode)
		assert.Equal(t, "", b.Genre)
		assert.Nil(t, b.Quantity)
		assert.Nil(t, b.Location)
	})

	t.Run("缺少条码", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Add(ctx, AddParams{Barcode: "  ", Name: "X"})
		assert.True(t, errors.Is(err, ErrMissingField))
		assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.CodeOf(err))
	})

	t.Run("重复条码返回冲突且原记录不变", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		_, err := svc.Add(ctx, AddParams{Barcode: "B1", Name: "first"})
		require.NoError(t, err)

		_, err = svc.Add(ctx, AddParams{Barcode: "B1", Name: "second"})
		assert.ErrorIs(t, err, ErrBarcodeDuplicate)

		got, err := svc.Retrieve(ctx, "B1")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
	})

	t.Run("仓储错误透传", func(t *testing.T) {
		repo := newMemRepo()
		repo.err = apperrors.ErrDatabaseError
		svc := NewService(repo)
		_, err := svc.Add(ctx, AddParams{Barcode: "B1"})
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
	})
}

func TestService_Modify(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)
	_, err := svc.Add(ctx, AddParams{Barcode: "B1", Name: "old", Author: "A", Genre: "tech"})
	require.NoError(t, err)
	require.NoError(t, svc.ApplyRack(ctx, "B1", "L1", 3))

	err = svc.Modify(ctx, "B1", BookFields{Name: strPtr("new"), Genre: strPtr("")})
	require.NoError(t, err)

	got, _ := svc.Retrieve(ctx, "B1")
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "A", got.Author)
	assert.Equal(t, "", got.Genre)
	// 修改从不影响数量和位置
	require.NotNil(t, got.Quantity)
	assert.Equal(t, 3, *got.Quantity)
	assert.Equal(t, "L1", *got.Location)

	assert.ErrorIs(t, svc.Modify(ctx, "missing", BookFields{Name: strPtr("x")}), ErrBookNotFound)
	assert.ErrorIs(t, svc.Modify(ctx, "missing", BookFields{}), ErrBookNotFound)
	assert.ErrorIs(t, svc.Modify(ctx, "", BookFields{}), ErrMissingField)
	assert.NoError(t, svc.Modify(ctx, "B1", BookFields{}))
}

func TestService_DeleteThenRetrieve(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	_, err := svc.Add(ctx, AddParams{Barcode: "B1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "B1"))

	_, err = svc.Retrieve(ctx, "B1")
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "B1"), ErrBookNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrMissingField)
}

func TestService_Lend(t *testing.T) {
	ctx := context.Background()

	t.Run("图书不存在", func(t *testing.T) {
		svc := NewService(newMemRepo())
		assert.ErrorIs(t, svc.Lend(ctx, "nope"), ErrUnavailable)
	})

	t.Run("未上架", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, _ = svc.Add(ctx, AddParams{Barcode: "B1"})
		assert.ErrorIs(t, svc.Lend(ctx, "B1"), ErrUnavailable)
	})

	t.Run("借到0后不可再借", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, _ = svc.Add(ctx, AddParams{Barcode: "B1"})
		require.NoError(t, svc.ApplyRack(ctx, "B1", "L1", 2))

		require.NoError(t, svc.Lend(ctx, "B1"))
		require.NoError(t, svc.Lend(ctx, "B1"))
		assert.ErrorIs(t, svc.Lend(ctx, "B1"), ErrUnavailable)

		got, _ := svc.Retrieve(ctx, "B1")
		assert.Equal(t, 0, *got.Quantity)
	})

	t.Run("缺少条码", func(t *testing.T) {
		svc := NewService(newMemRepo())
		assert.ErrorIs(t, svc.Lend(ctx, ""), ErrMissingField)
	})
}

func TestService_ApplyRack(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	_, _ = svc.Add(ctx, AddParams{Barcode: "B1"})

	require.NoError(t, svc.ApplyRack(ctx, "B1", "L1", 5))
	require.NoError(t, svc.ApplyRack(ctx, "B1", "L2", 2))

	got, _ := svc.Retrieve(ctx, "B1")
	// 覆盖而非累加
	assert.Equal(t, 2, *got.Quantity)
	assert.Equal(t, "L2", *got.Location)

	require.NoError(t, svc.ApplyRack(ctx, "B1", "L3", 0))
	assert.ErrorIs(t, svc.ApplyRack(ctx, "B1", "L3", -1), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.ApplyRack(ctx, "", "L3", 1), ErrMissingField)
	assert.ErrorIs(t, svc.ApplyRack(ctx, "B1", "", 1), ErrMissingField)
	assert.ErrorIs(t, svc.ApplyRack(ctx, "B9", "L1", 1), ErrBookNotFound)
}

func TestService_ListNormalizesParams(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	for _, bc := range []string{"B1", "B2"} {
		_, err := svc.Add(ctx, AddParams{Barcode: bc, Name: "name-" + bc})
		require.NoError(t, err)
	}

	books, total, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, books, 2)
}

func TestService_RevisionChangesOnEveryWrite(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	_, err := svc.Add(ctx, AddParams{Barcode: "B1"})
	require.NoError(t, err)

	seen := map[Revision]bool{}
	record := func() {
		rev, err := svc.Revision(ctx, "B1")
		require.NoError(t, err)
		assert.False(t, seen[rev], "修订重复: %+v", rev)
		seen[rev] = true
	}

	record()
	require.NoError(t, svc.Modify(ctx, "B1", BookFields{Name: strPtr("新书名")}))
	record()
	require.NoError(t, svc.ApplyRack(ctx, "B1", "L1", 2))
	record()
	require.NoError(t, svc.Lend(ctx, "B1"))
	record()

	require.NoError(t, svc.Delete(ctx, "B1"))
	_, err = svc.Revision(ctx, "B1")
	assert.ErrorIs(t, err, ErrBookNotFound)

	// 重新登记同一条码得到新ID,旧缓存不会被误认为有效
	_, err = svc.Add(ctx, AddParams{Barcode: "B1"})
	require.NoError(t, err)
	record()
}
