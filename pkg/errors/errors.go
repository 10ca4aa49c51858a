package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// target是预定义错误(不带内部错误)时，同错误码即视为同一类错误，
// WithMessage派生的错误和WrapWithCode包装的错误都能用errors.Is匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || (t.Err == nil && e.Code == t.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithMessage 复制错误并替换提示信息（错误码不变）
// 用途：ErrMissingField.WithMessage("缺少字段: barcode")
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapWithCode 使用指定错误码包装底层错误
func WrapWithCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeDeviceError   = 50003 // 扫码设备错误

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError    = 40000 // 业务错误(通用)
	ErrCodeBarcodeDuplicate = 40004 // 条码已存在
	ErrCodeUnavailable      = 40006 // 无可借副本
	ErrCodeInvalidState     = 40007 // 库存状态不允许此操作
	ErrCodeNoneDetected     = 40008 // 未识别到条码
	ErrCodeDuplicateEntry   = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeMissingField  = 40902 // 缺少必填字段
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrMissingField  = New(ErrCodeMissingField, "缺少必填字段")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误对应的业务码，nil返回0
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
