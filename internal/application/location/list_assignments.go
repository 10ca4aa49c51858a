package location

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/domain/location"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// ListAssignmentsUseCase 台账查询用例
type ListAssignmentsUseCase struct {
	ledger location.Ledger
}

// NewListAssignmentsUseCase 创建台账查询用例
func NewListAssignmentsUseCase(ledger location.Ledger) *ListAssignmentsUseCase {
	return &ListAssignmentsUseCase{ledger: ledger}
}

// ListAssignmentsRequest 查询条件,两者至少提供一个
// 同时提供时按图书查询,再按位置过滤
type ListAssignmentsRequest struct {
	BookBarcode     string
	LocationBarcode string
}

// AssignmentItem 台账记录DTO
type AssignmentItem struct {
	ID              uint   `json:"id"`
	LocationBarcode string `json:"locationBarcode"`
	BookBarcode     string `json:"bookBarcode"`
	Quantity        int    `json:"quantity"`
	CreatedAt       string `json:"createdAt"`
}

// Execute 查询台账,最新的在前
func (uc *ListAssignmentsUseCase) Execute(ctx context.Context, req ListAssignmentsRequest) (list []AssignmentItem, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListAssignments")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("history", start, err)
	}()

	bookBarcode := book.NormalizeBarcode(req.BookBarcode)
	locationBarcode := book.NormalizeBarcode(req.LocationBarcode)

	var assignments []*location.Assignment
	switch {
	case bookBarcode != "":
		assignments, err = uc.ledger.ListByBook(ctx, bookBarcode)
	case locationBarcode != "":
		assignments, err = uc.ledger.ListByLocation(ctx, locationBarcode)
	default:
		return nil, location.ErrFilterRequired
	}
	if err != nil {
		return nil, err
	}

	list = make([]AssignmentItem, 0, len(assignments))
	for _, a := range assignments {
		if bookBarcode != "" && locationBarcode != "" && a.LocationBarcode != locationBarcode {
			continue
		}
		list = append(list, AssignmentItem{
			ID:              a.ID,
			LocationBarcode: a.LocationBarcode,
			BookBarcode:     a.BookBarcode,
			Quantity:        a.Quantity,
			CreatedAt:       a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}
