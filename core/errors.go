package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Split 错误：INSUFFICIENT_DATA, INVALID_INPUT
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Ingest 错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "INSUFFICIENT_DATA", "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "split", "store", "ingest"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"         // 资源不存在
	ErrorCodeNotSupported     = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeUnavailable      = "UNAVAILABLE"       // 服务不可用
	ErrorCodeInvalidInput     = "INVALID_INPUT"     // 输入无效
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA" // 数据量不足以满足要求
	ErrorCodeInternalError    = "INTERNAL_ERROR"    // 内部错误
)

// 模块名称常量
const (
	ModuleSplit    = "split"    // 训练/测试切分模块
	ModuleLabel    = "label"    // 样本标注模块
	ModuleIngest   = "ingest"   // 数据读取模块
	ModuleStore    = "store"    // 存储模块
	ModulePipeline = "pipeline" // 流水线模块
	ModuleFeature  = "feature"  // 特征模块
)

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA
func IsInsufficientData(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInsufficientData
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}
