/*
 * @Description: 配置仓储的 SQL 实现
 * @Author: 安知鱼
 * @Date: 2025-11-06 11:38:52
 * @LastEditTime: 2026-05-30 21:12:40
 * @LastEditors: 安知鱼
 */
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
)

type settingRow struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ConfigKey string    `db:"config_key"`
	Value     string    `db:"value"`
	Comment   string    `db:"comment"`
}

func (r *settingRow) toModel() *model.Setting {
	return &model.Setting{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		ConfigKey: r.ConfigKey,
		Value:     r.Value,
		Comment:   r.Comment,
	}
}

type settingRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewSettingRepository 创建配置仓储
func NewSettingRepository(db *sqlx.DB) repository.SettingRepository {
	return &settingRepo{db: db, sb: builderFor(db)}
}

// findByKey 仅供 EnsureDefaults 判断默认项是否已存在
func (r *settingRepo) findByKey(ctx context.Context, key string) (*model.Setting, error) {
	query, args, err := r.sb.Select("id", "created_at", "updated_at", "config_key", "value", "comment").
		From("settings").
		Where(sq.Eq{"config_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建配置查询语句失败: %w", err)
	}

	var row settingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, constant.ErrNotFound
		}
		return nil, fmt.Errorf("查询配置 %s 失败: %w", key, err)
	}
	return row.toModel(), nil
}

func (r *settingRepo) FindAll(ctx context.Context) ([]*model.Setting, error) {
	query, args, err := r.sb.Select("id", "created_at", "updated_at", "config_key", "value", "comment").
		From("settings").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建配置查询语句失败: %w", err)
	}

	var rows []settingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("查询全部配置失败: %w", err)
	}

	settings := make([]*model.Setting, 0, len(rows))
	for i := range rows {
		settings = append(settings, rows[i].toModel())
	}
	return settings, nil
}

func (r *settingRepo) Update(ctx context.Context, settingsToUpdate map[string]string) error {
	now := time.Now()
	for key, value := range settingsToUpdate {
		query, args, err := r.sb.Update("settings").
			Set("value", value).
			Set("updated_at", now).
			Where(sq.Eq{"config_key": key}).
			ToSql()
		if err != nil {
			return fmt.Errorf("构建配置更新语句失败: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("更新配置 %s 失败: %w", key, err)
		}
	}
	return nil
}

// EnsureDefaults 逐项补齐缺失的默认配置，已存在的键不覆盖
func (r *settingRepo) EnsureDefaults(ctx context.Context, defaults []*model.Setting) error {
	now := time.Now()
	for _, def := range defaults {
		if _, err := r.findByKey(ctx, def.ConfigKey); err == nil {
			continue
		} else if !errors.Is(err, constant.ErrNotFound) {
			return err
		}

		query, args, err := r.sb.Insert("settings").
			Columns("created_at", "updated_at", "config_key", "value", "comment").
			Values(now, now, def.ConfigKey, def.Value, def.Comment).
			ToSql()
		if err != nil {
			return fmt.Errorf("构建配置插入语句失败: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("写入默认配置 %s 失败: %w", def.ConfigKey, err)
		}
	}
	return nil
}
