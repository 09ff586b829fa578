/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:27:02
 * @LastEditTime: 2026-05-22 18:58:50
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// UserRepository 定义了用户数据操作的契约。
type UserRepository interface {
	// FindByID 根据用户id(number)查找用户
	FindByID(ctx context.Context, id uint) (*model.User, error)
}
