package service

import (
	"errors"
	"fmt"

	"github.com/ldc-store/internal/constants"
)

// 业务哨兵错误，handler 层用 errors.Is/As 映射为响应码与文案。
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrSlugExists         = errors.New("该标识已被使用")
	ErrSlugInvalid        = errors.New("标识格式不合法")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("新密码不符合安全要求")
	ErrNoValidCards       = errors.New("没有可导入的有效卡密")
	ErrAllCardsExist      = errors.New("所有卡密均已存在")
	ErrProductHasCards    = errors.New("商品下还有未售出卡密")
	ErrEmptyOrderIDs      = errors.New("请选择要删除的订单")
	ErrNoOrdersDeleted    = errors.New("所选订单均不存在或已删除")
	ErrUnknownSettingKey  = errors.New("不支持的设置项")
)

// ErrTooManyOrders 批量删除订单超出单次上限
var ErrTooManyOrders = fmt.Errorf("单次最多删除 %d 笔订单", constants.MaxOrderBatchDelete)

// CategoryInUseError 分类仍被商品引用，删除被拒绝。
type CategoryInUseError struct {
	Count int64
}

// Error 实现 error 接口
func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("该分类下还有 %d 个商品，无法删除", e.Count)
}
