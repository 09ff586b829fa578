/*
 * @Description: 用户仓储的 SQL 实现
 * @Author: 安知鱼
 * @Date: 2025-11-06 11:20:09
 * @LastEditTime: 2026-04-12 18:03:26
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

type userRow struct {
	ID          uint       `db:"id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	Username    string     `db:"username"`
	Nickname    string     `db:"nickname"`
	Email       string     `db:"email"`
	Website     string     `db:"website"`
	LastLoginAt *time.Time `db:"last_login_at"`
	UserGroupID uint       `db:"user_group_id"`
	Status      int        `db:"status"`
}

func (r *userRow) toModel() *model.User {
	return &model.User{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Username:    r.Username,
		Nickname:    r.Nickname,
		Email:       r.Email,
		Website:     r.Website,
		LastLoginAt: r.LastLoginAt,
		UserGroupID: r.UserGroupID,
		Status:      r.Status,
	}
}

var userColumns = []string{
	"id", "created_at", "updated_at", "username", "nickname",
	"email", "website", "last_login_at", "user_group_id", "status",
}

type userRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepo{db: db, sb: builderFor(db)}
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建用户查询语句失败: %w", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, constant.ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return row.toModel(), nil
}
