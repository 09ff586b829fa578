/*
 * @Description: 评论仓储的 SQL 实现
 * @Author: 安知鱼
 * @Date: 2025-11-06 10:21:17
 * @LastEditTime: 2026-08-25 15:48:02
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

// commentRow 对应 comments 表的一行
type commentRow struct {
	ID              uint      `db:"id"`
	PostID          uint      `db:"post_id"`
	ParentID        uint      `db:"parent_id"`
	UserID          uint      `db:"user_id"`
	AuthorName      string    `db:"author_name"`
	AuthorEmail     string    `db:"author_email"`
	AuthorURL       string    `db:"author_url"`
	AuthorIP        string    `db:"author_ip"`
	AuthorUserAgent string    `db:"author_user_agent"`
	Content         string    `db:"content"`
	Type            string    `db:"type"`
	Approved        string    `db:"approved"`
	Date            time.Time `db:"date"`
	DateGMT         time.Time `db:"date_gmt"`
}

func (r *commentRow) toModel() *model.Comment {
	return &model.Comment{
		ID:       r.ID,
		PostID:   r.PostID,
		ParentID: r.ParentID,
		UserID:   r.UserID,
		Author: model.Author{
			Name:      r.AuthorName,
			Email:     r.AuthorEmail,
			URL:       r.AuthorURL,
			IP:        r.AuthorIP,
			UserAgent: r.AuthorUserAgent,
		},
		Content:  r.Content,
		Type:     r.Type,
		Approved: r.Approved,
		Date:     r.Date,
		DateGMT:  r.DateGMT,
	}
}

var commentColumns = []string{
	"id", "post_id", "parent_id", "user_id",
	"author_name", "author_email", "author_url", "author_ip", "author_user_agent",
	"content", "type", "approved", "date", "date_gmt",
}

type commentRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewCommentRepository 创建评论仓储。占位符风格按驱动自动选择。
func NewCommentRepository(db *sqlx.DB) repository.CommentRepository {
	return &commentRepo{db: db, sb: builderFor(db)}
}

func (r *commentRepo) Create(ctx context.Context, prepared *model.PreparedComment) (*model.Comment, error) {
	builder := r.sb.Insert("comments").
		Columns(
			"post_id", "parent_id", "user_id",
			"author_name", "author_email", "author_url", "author_ip", "author_user_agent",
			"content", "type", "approved", "date", "date_gmt",
		).
		Values(
			prepared.PostID, prepared.ParentID, prepared.UserID,
			prepared.Author.Name, prepared.Author.Email, prepared.Author.URL,
			prepared.Author.IP, prepared.Author.UserAgent,
			prepared.Content, prepared.Type, prepared.Approved,
			prepared.Date, prepared.DateGMT,
		)

	var id uint
	if r.db.DriverName() == "postgres" {
		query, args, err := builder.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, fmt.Errorf("构建评论插入语句失败: %w", err)
		}
		if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, fmt.Errorf("插入评论失败: %w", err)
		}
	} else {
		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("构建评论插入语句失败: %w", err)
		}
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("插入评论失败: %w", err)
		}
		lastID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("获取评论自增ID失败: %w", err)
		}
		id = uint(lastID)
	}

	return r.FindByID(ctx, id)
}

func (r *commentRepo) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	query, args, err := r.sb.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建评论查询语句失败: %w", err)
	}

	var row commentRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, constant.ErrNotFound
		}
		return nil, fmt.Errorf("查询评论 %d 失败: %w", id, err)
	}
	return row.toModel(), nil
}

func (r *commentRepo) UpdateStatus(ctx context.Context, id uint, approved string) (*model.Comment, error) {
	query, args, err := r.sb.Update("comments").
		Set("approved", approved).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建状态更新语句失败: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("更新评论 %d 状态失败: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, constant.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *commentRepo) CountChildren(ctx context.Context, parentID uint) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("comments").
		Where(sq.Eq{"parent_id": parentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("构建子评论计数语句失败: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("统计评论 %d 的子评论失败: %w", parentID, err)
	}
	return count, nil
}

func (r *commentRepo) CountDuplicates(ctx context.Context, probe repository.DuplicateProbe) (int64, error) {
	// 作者按昵称或邮箱任一匹配，与 WordPress 的查重口径一致
	authorMatch := sq.Or{}
	if probe.AuthorName != "" {
		authorMatch = append(authorMatch, sq.Eq{"author_name": probe.AuthorName})
	}
	if probe.AuthorEmail != "" {
		authorMatch = append(authorMatch, sq.Eq{"author_email": probe.AuthorEmail})
	}

	builder := r.sb.Select("COUNT(*)").
		From("comments").
		Where(sq.Eq{"post_id": probe.PostID}).
		Where(sq.Eq{"parent_id": probe.ParentID}).
		Where(sq.Eq{"content": probe.Content}).
		Where(sq.NotEq{"approved": model.ApprovedTrash})
	if len(authorMatch) > 0 {
		builder = builder.Where(authorMatch)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("构建查重语句失败: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("重复评论查询失败: %w", err)
	}
	return count, nil
}

func (r *commentRepo) LastCommentTime(ctx context.Context, authorEmail, authorName string) (*time.Time, error) {
	identity := sq.Or{}
	if authorEmail != "" {
		identity = append(identity, sq.Eq{"author_email": authorEmail})
	}
	if authorName != "" {
		identity = append(identity, sq.Eq{"author_name": authorName})
	}
	if len(identity) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select("date_gmt").
		From("comments").
		Where(identity).
		OrderBy("date_gmt DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("构建最近评论时间查询失败: %w", err)
	}

	var last time.Time
	if err := r.db.GetContext(ctx, &last, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询作者最近评论时间失败: %w", err)
	}
	return &last, nil
}

func (r *commentRepo) HasApprovedAuthor(ctx context.Context, authorEmail, authorName string) (bool, error) {
	identity := sq.Or{}
	if authorEmail != "" {
		identity = append(identity, sq.Eq{"author_email": authorEmail})
	}
	if authorName != "" {
		identity = append(identity, sq.Eq{"author_name": authorName})
	}
	if len(identity) == 0 {
		return false, nil
	}

	query, args, err := r.sb.Select("COUNT(*)").
		From("comments").
		Where(identity).
		Where(sq.Eq{"approved": model.ApprovedApproved}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("构建历史审核查询失败: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("查询作者历史审核记录失败: %w", err)
	}
	return count > 0, nil
}

func (r *commentRepo) DeleteTrashBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.sb.Delete("comments").
		Where(sq.Eq{"approved": model.ApprovedTrash}).
		Where(sq.Lt{"date_gmt": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("构建回收站清理语句失败: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("清理回收站评论失败: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}
