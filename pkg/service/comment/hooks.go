/*
 * @Description: 评论创建管线的扩展点
 * @Author: 安知鱼
 * @Date: 2025-11-04 09:40:11
 * @LastEditTime: 2026-01-19 16:22:48
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// PreprocessFunc 在字段提取之后、准入检查之前运行，可以改写待写入的评论。
// 返回非 nil 的 RequestError 会使请求短路。
type PreprocessFunc func(ctx context.Context, prepared *model.PreparedComment) *model.RequestError

// PreInsertFunc 在准入检查之后、写库之前运行，是最后一次改写机会。
type PreInsertFunc func(ctx context.Context, prepared *model.PreparedComment) *model.RequestError

// PostInsertFunc 在写库成功后运行，失败只记录不回滚。
type PostInsertFunc func(ctx context.Context, created *model.Comment)

// Hooks 聚合了管线的全部扩展回调，按注册顺序依次执行。
// 所有回调在服务构造时注入，默认为空。
type Hooks struct {
	Preprocess []PreprocessFunc
	PreInsert  []PreInsertFunc
	PostInsert []PostInsertFunc
}

func (h Hooks) runPreprocess(ctx context.Context, prepared *model.PreparedComment) *model.RequestError {
	for _, fn := range h.Preprocess {
		if rejection := fn(ctx, prepared); rejection != nil {
			return rejection
		}
	}
	return nil
}

func (h Hooks) runPreInsert(ctx context.Context, prepared *model.PreparedComment) *model.RequestError {
	for _, fn := range h.PreInsert {
		if rejection := fn(ctx, prepared); rejection != nil {
			return rejection
		}
	}
	return nil
}

func (h Hooks) runPostInsert(ctx context.Context, created *model.Comment) {
	for _, fn := range h.PostInsert {
		fn(ctx, created)
	}
}
