package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library-inventory/internal/application/book"
	"github.com/xiebiao/library-inventory/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
	"github.com/xiebiao/library-inventory/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase      *appbook.AddBookUseCase
	deleteBookUseCase   *appbook.DeleteBookUseCase
	modifyBookUseCase   *appbook.ModifyBookUseCase
	retrieveBookUseCase *appbook.RetrieveBookUseCase
	lendBookUseCase     *appbook.LendBookUseCase
	listBooksUseCase    *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	modifyBookUseCase *appbook.ModifyBookUseCase,
	retrieveBookUseCase *appbook.RetrieveBookUseCase,
	lendBookUseCase *appbook.LendBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:      addBookUseCase,
		deleteBookUseCase:   deleteBookUseCase,
		modifyBookUseCase:   modifyBookUseCase,
		retrieveBookUseCase: retrieveBookUseCase,
		lendBookUseCase:     lendBookUseCase,
		listBooksUseCase:    listBooksUseCase,
	}
}

// bindError 参数绑定失败统一响应
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}

// AddBook 登记图书
// @Summary      登记图书
// @Description  登记新图书,数量和位置均未设置
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.AddBookResponse}
// @Failure      200 {object} response.Response "40902缺少字段 / 40004条码已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Barcode:       req.Barcode,
		Name:          req.Name,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, &dto.AddBookResponse{ID: result.ID})
}

// GetBook 查询图书
// @Summary      查询图书
// @Description  未上架的图书quantity为"unset",location为"unassigned"
// @Tags         图书
// @Produce      json
// @Param        barcode path string true "图书条码"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{barcode} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	view, err := h.retrieveBookUseCase.Execute(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(view))
}

// ModifyBook 修改图书描述信息
// @Summary      修改图书
// @Description  只修改请求中出现的字段,数量和位置不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        barcode path string true "图书条码"
// @Param        request body dto.ModifyBookRequest true "要修改的字段"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{barcode} [put]
func (h *BookHandler) ModifyBook(c *gin.Context) {
	var req dto.ModifyBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.modifyBookUseCase.Execute(c.Request.Context(), appbook.ModifyBookRequest{
		Barcode:       c.Param("barcode"),
		Name:          req.Name,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        barcode path string true "图书条码"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{barcode} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("barcode")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// LendBook 借出一本
// @Summary      借出图书
// @Description  可借数量减1;未上架、数量为0或图书不存在返回40006
// @Tags         图书
// @Produce      json
// @Param        barcode path string true "图书条码"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40006无可借副本"
// @Router       /api/v1/books/{barcode}/lend [post]
func (h *BookHandler) LendBook(c *gin.Context) {
	if err := h.lendBookUseCase.Execute(c.Request.Context(), c.Param("barcode")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询,支持关键词、类别过滤和排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        pageSize query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词"
// @Param        genre query string false "类别"
// @Param        sortBy query string false "排序" Enums(name_asc, quantity_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    req.Genre,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(result.List))
	for i, view := range result.List {
		list[i] = toBookResponse(view)
	}
	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}

func toBookResponse(view *appbook.BookView) *dto.BookResponse {
	return &dto.BookResponse{
		Barcode:       view.Barcode,
		Name:          view.Name,
		Author:        view.Author,
		PublishedDate: view.PublishedDate,
		Genre:         view.Genre,
		Quantity:      view.Quantity,
		Location:      view.Location,
	}
}
