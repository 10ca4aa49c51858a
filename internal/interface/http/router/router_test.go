package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appbook "github.com/xiebiao/library-inventory/internal/application/book"
	applocation "github.com/xiebiao/library-inventory/internal/application/location"
	"github.com/xiebiao/library-inventory/internal/application/port"
	appscan "github.com/xiebiao/library-inventory/internal/application/scan"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library-inventory/internal/interface/http/handler"
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// stubScanner 固定返回一个条码或错误
type stubScanner struct {
	barcode string
	err     error
}

func (s stubScanner) ScanOnce(context.Context, time.Duration) (string, error) { return s.barcode, s.err }
func (s stubScanner) DecodeImage(image.Image) (string, error)                { return s.barcode, s.err }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T, scanner appscan.Adapter) *gin.Engine {
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

	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode}}
	log := logger.Nop()

	bookService := book.NewService(mysql.NewBookRepository(db))
	ledger := mysql.NewLocationLedger(db)
	effects := port.NewSideEffects(nil, nil, log)

	bookHandler := handler.NewBookHandler(
		appbook.NewAddBookUseCase(bookService, effects),
		appbook.NewDeleteBookUseCase(bookService, effects),
		appbook.NewModifyBookUseCase(bookService, effects),
		appbook.NewRetrieveBookUseCase(bookService, effects),
		appbook.NewLendBookUseCase(bookService, effects),
		appbook.NewListBooksUseCase(bookService),
	)
	locationHandler := handler.NewLocationHandler(
		applocation.NewRackBookUseCase(mysql.NewTxManager(db), ledger, bookService, effects, false),
		applocation.NewListAssignmentsUseCase(ledger),
	)
	scanHandler := handler.NewScanHandler(appscan.NewScanBarcodeUseCase(scanner, log))

	return New(cfg, log, bookHandler, locationHandler, scanHandler)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) envelope {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestInventoryScenario(t *testing.T) {
	r := newTestEngine(t, stubScanner{err: appscan.ErrNoneDetected})

	// 1. 登记B1
	env := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{
		"barcode": "B1", "name": "N", "author": "A", "publishedDate": "2020-01-01",
	})
	require.Equal(t, 0, env.Code, env.Message)
	var added struct{ ID uint }
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.NotZero(t, added.ID)

	// 2. 未上架
	env = doJSON(t, r, http.MethodGet, "/api/v1/books/B1", nil)
	require.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"barcode":"B1","name":"N","author":"A","publishedDate":"2020-01-01","genre":"","quantity":"unset","location":"unassigned"}`, string(env.Data))

	// 3. 上架到L1,数量3
	env = doJSON(t, r, http.MethodPost, "/api/v1/locations/rack", map[string]any{
		"locationBarcode": "L1", "bookBarcode": "B1", "quantity": 3,
	})
	require.Equal(t, 0, env.Code, env.Message)

	// 4. 借出两本
	for i := 0; i < 2; i++ {
		env = doJSON(t, r, http.MethodPost, "/api/v1/books/B1/lend", nil)
		require.Equal(t, 0, env.Code, env.Message)
	}

	env = doJSON(t, r, http.MethodGet, "/api/v1/books/B1", nil)
	var view struct {
		Quantity int    `json:"quantity"`
		Location string `json:"location"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 1, view.Quantity)
	assert.Equal(t, "L1", view.Location)

	// 5. 借出最后一本后不可借
	env = doJSON(t, r, http.MethodPost, "/api/v1/books/B1/lend", nil)
	require.Equal(t, 0, env.Code)
	env = doJSON(t, r, http.MethodPost, "/api/v1/books/B1/lend", nil)
	assert.Equal(t, apperrors.ErrCodeUnavailable, env.Code)

	// 6. 台账
	env = doJSON(t, r, http.MethodGet, "/api/v1/locations/assignments?book_barcode=B1", nil)
	require.Equal(t, 0, env.Code)
	var history []struct {
		LocationBarcode string `json:"locationBarcode"`
		Quantity        int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Quantity)

	// 7. 删除后查询不到
	env = doJSON(t, r, http.MethodDelete, "/api/v1/books/B1", nil)
	require.Equal(t, 0, env.Code)
	env = doJSON(t, r, http.MethodGet, "/api/v1/books/B1", nil)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
}

func TestBookErrors(t *testing.T) {
	r := newTestEngine(t, stubScanner{})

	env := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{"name": "N"})
	assert.Equal(t, apperrors.ErrCodeMissingField, env.Code)
	assert.Equal(t, "缺少必填字段: barcode", env.Message)

	doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{"barcode": "B1"})
	env = doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{"barcode": "B1"})
	assert.Equal(t, apperrors.ErrCodeBarcodeDuplicate, env.Code)

	env = doJSON(t, r, http.MethodPut, "/api/v1/books/missing", map[string]any{"name": "X"})
	assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)

	env = doJSON(t, r, http.MethodPost, "/api/v1/locations/rack", map[string]any{"locationBarcode": "L1", "bookBarcode": "B1"})
	assert.Equal(t, apperrors.ErrCodeMissingField, env.Code)
	assert.Equal(t, "缺少必填字段: quantity", env.Message)

	env = doJSON(t, r, http.MethodGet, "/api/v1/books?sortBy=price_desc", nil)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	env = doJSON(t, r, http.MethodGet, "/api/v1/locations/assignments", nil)
	assert.Equal(t, apperrors.ErrCodeMissingField, env.Code)
}

func TestModifyAndList(t *testing.T) {
	r := newTestEngine(t, stubScanner{})

	doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{"barcode": "B1", "name": "Old", "genre": "sci"})
	doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]any{"barcode": "B2", "name": "Other", "genre": "art"})

	env := doJSON(t, r, http.MethodPut, "/api/v1/books/B1", map[string]any{"name": "New"})
	require.Equal(t, 0, env.Code)

	env = doJSON(t, r, http.MethodGet, "/api/v1/books?genre=sci", nil)
	require.Equal(t, 0, env.Code)
	var page struct {
		List []struct {
			Barcode string `json:"barcode"`
			Name    string `json:"name"`
			Genre   string `json:"genre"`
		} `json:"list"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.List, 1)
	assert.Equal(t, "New", page.List[0].Name)
	assert.Equal(t, "sci", page.List[0].Genre)
}

func TestScan(t *testing.T) {
	r := newTestEngine(t, stubScanner{barcode: "9787111544937"})

	env := doJSON(t, r, http.MethodGet, "/api/v1/scan?timeout=2s", nil)
	require.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"barcode":"9787111544937"}`, string(env.Data))

	env = doJSON(t, r, http.MethodGet, "/api/v1/scan?timeout=soon", nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	r = newTestEngine(t, stubScanner{err: appscan.ErrNoneDetected})
	env = doJSON(t, r, http.MethodGet, "/api/v1/scan", nil)
	assert.Equal(t, apperrors.ErrCodeNoneDetected, env.Code)
}

func TestScanImage(t *testing.T) {
	r := newTestEngine(t, stubScanner{barcode: "B1"})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "frame.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewGray(image.Rect(0, 0, 4, 4))))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code, env.Message)
	assert.JSONEq(t, `{"barcode":"B1"}`, string(env.Data))
}

func TestPingAndMetrics(t *testing.T) {
	r := newTestEngine(t, stubScanner{})

	env := doJSON(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, 0, env.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
