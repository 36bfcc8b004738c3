package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口。
//
// Feast 是一个开源的 Feature Store。数据准备链路用它给标注样本补充
// 模型特征（feature.EnrichNode）：样本表里只有 customer_id/article_id，
// 特征（年龄段、价位段、点击率等）从 Feast 在线存储按实体批量拉取。
//
// 设计原则（与 store 一致）：
//   - 领域层：Client 接口（本文件）
//   - 基础设施层：GrpcClient 基于官方 SDK 实现
//   - 测试通过自定义 Client 实现打桩，不依赖真实服务
type Client interface {
	// GetOnlineFeatures 按实体行批量获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["customer_stats:age_bucket", "article_stats:ctr"]
	Features []string

	// EntityRows 实体行，例如 [{"customer_id": "c1"}, {"customer_id": "c2"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，覆盖客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，与请求的实体行一一对应
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置
type ClientConfig struct {
	// Timeout 超时时间
	Timeout time.Duration

	// StaticToken 静态 Token 认证（为空表示无认证）
	StaticToken string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 配置选项：设置静态 Token 认证
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
