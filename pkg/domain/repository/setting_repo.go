/*
 * @Description: 配置数据操作的契约
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:24:40
 * @LastEditTime: 2026-03-15 18:53:13
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// SettingRepository 定义了配置数据操作的契约
type SettingRepository interface {
	FindAll(ctx context.Context) ([]*model.Setting, error)
	Update(ctx context.Context, settingsToUpdate map[string]string) error
	// EnsureDefaults 将缺失的默认配置项补齐到数据库，已存在的键不覆盖
	EnsureDefaults(ctx context.Context, defaults []*model.Setting) error
}
