package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

func TestIsDuplicateError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{errors.New("Error 1062 (23000): Duplicate entry 'B1' for key 'books.idx_books_barcode'"), true},
		{errors.New("UNIQUE constraint failed: books.barcode"), true},
		{errors.New("database is locked"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isDuplicateError(tc.err), "%v", tc.err)
	}
}

func TestDriverErrorsAreDatabaseErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindByBarcode(context.Background(), "B1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
}
