/*
 * @Description: 文章仓储的 SQL 实现（只读）
 * @Author: 安知鱼
 * @Date: 2025-11-06 11:02:44
 * @LastEditTime: 2026-04-12 17:55:31
 * @LastEditors: 安知鱼
 */
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
)

type postRow struct {
	ID            uint   `db:"id"`
	AuthorID      uint   `db:"author_id"`
	Title         string `db:"title"`
	Type          string `db:"type"`
	Status        string `db:"status"`
	CommentStatus string `db:"comment_status"`
}

type postRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewPostRepository 创建文章仓储
func NewPostRepository(db *sqlx.DB) repository.PostRepository {
	return &postRepo{db: db, sb: builderFor(db)}
}

func (r *postRepo) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	query, args, err := r.sb.Select("id", "author_id", "title", "type", "status", "comment_status").
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建文章查询语句失败: %w", err)
	}

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, constant.ErrNotFound
		}
		return nil, fmt.Errorf("查询文章 %d 失败: %w", id, err)
	}

	return &model.Post{
		ID:            row.ID,
		AuthorID:      row.AuthorID,
		Title:         row.Title,
		Type:          row.Type,
		Status:        row.Status,
		CommentStatus: row.CommentStatus,
	}, nil
}
