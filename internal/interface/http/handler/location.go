package handler

import (
	"github.com/gin-gonic/gin"

	applocation "github.com/xiebiao/library-inventory/internal/application/location"
	"github.com/xiebiao/library-inventory/internal/interface/http/dto"
	"github.com/xiebiao/library-inventory/pkg/response"
)

// LocationHandler 上架与台账HTTP处理器
type LocationHandler struct {
	rackBookUseCase        *applocation.RackBookUseCase
	listAssignmentsUseCase *applocation.ListAssignmentsUseCase
}

// NewLocationHandler 创建上架处理器
func NewLocationHandler(rackBookUseCase *applocation.RackBookUseCase, listAssignmentsUseCase *applocation.ListAssignmentsUseCase) *LocationHandler {
	return &LocationHandler{
		rackBookUseCase:        rackBookUseCase,
		listAssignmentsUseCase: listAssignmentsUseCase,
	}
}

// RackBook 上架
// @Summary      上架图书
// @Description  追加台账记录,并整体覆盖图书的位置和数量(quantity可以为0)
// @Tags         位置
// @Accept       json
// @Produce      json
// @Param        request body dto.RackBookRequest true "上架信息"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40902缺少字段 / 40900数量为负"
// @Router       /api/v1/locations/rack [post]
func (h *LocationHandler) RackBook(c *gin.Context) {
	var req dto.RackBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.rackBookUseCase.Execute(c.Request.Context(), applocation.RackBookRequest{
		LocationBarcode: req.LocationBarcode,
		BookBarcode:     req.BookBarcode,
		Quantity:        req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListAssignments 台账查询
// @Summary      上架台账
// @Description  按图书或位置查询上架记录,最新的在前
// @Tags         位置
// @Produce      json
// @Param        book_barcode query string false "图书条码"
// @Param        location_barcode query string false "位置条码"
// @Success      200 {object} response.Response{data=[]dto.AssignmentResponse}
// @Failure      200 {object} response.Response "40902两个条件都没有提供"
// @Router       /api/v1/locations/assignments [get]
func (h *LocationHandler) ListAssignments(c *gin.Context) {
	var req dto.ListAssignmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.listAssignmentsUseCase.Execute(c.Request.Context(), applocation.ListAssignmentsRequest{
		BookBarcode:     req.BookBarcode,
		LocationBarcode: req.LocationBarcode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.AssignmentResponse, len(items))
	for i, item := range items {
		list[i] = dto.AssignmentResponse{
			ID:              item.ID,
			LocationBarcode: item.LocationBarcode,
			BookBarcode:     item.BookBarcode,
			Quantity:        item.Quantity,
			CreatedAt:       item.CreatedAt,
		}
	}
	response.Success(c, list)
}
