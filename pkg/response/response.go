package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// loggerKey gin.Context中存放日志器的键（由RequestLogger中间件设置）
const loggerKey = "response.logger"

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SetLogger 绑定请求级日志器，Error会用它记录内部错误
func SetLogger(c *gin.Context, log *logger.Logger) {
	c.Set(loggerKey, log)
}

func loggerFrom(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*logger.Logger); ok {
			return log
		}
	}
	return nil
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	resp, err := h.lendBookUseCase.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil {
		if log := loggerFrom(c); log != nil {
			ctx := log.WithField(c.Request.Context(), "code", appErr.Code)
			log.Error(ctx, appErr.Message, appErr.Err)
		}
	}
	_ = c.Error(err)

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`       // 数据列表
	Total      int64       `json:"total"`      // 总记录数
	Page       int         `json:"page"`       // 当前页码
	PageSize   int         `json:"pageSize"`   // 每页大小
	TotalPages int         `json:"totalPages"` // 总页数
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
