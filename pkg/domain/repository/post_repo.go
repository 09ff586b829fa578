/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:29:35
 * @LastEditTime: 2026-02-27 15:41:09
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// PostRepository 定义了文章数据操作的契约。
// 评论服务只读文章，不负责文章的写入与维护。
type PostRepository interface {
	// FindByID 根据文章ID查找文章，未找到时返回 constant.ErrNotFound
	FindByID(ctx context.Context, id uint) (*model.Post, error)
}
