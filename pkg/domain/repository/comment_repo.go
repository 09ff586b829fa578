/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:20:15
 * @LastEditTime: 2026-07-30 22:18:03
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"
	"time"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// DuplicateProbe 描述重复评论检测需要比对的字段。
// 与 WordPress 的查重口径一致：同一文章、同一父级下，
// 同一作者（按昵称或邮箱匹配）提交过完全相同的内容即视为重复。
type DuplicateProbe struct {
	PostID      uint
	ParentID    uint
	AuthorName  string
	AuthorEmail string
	Content     string
}

// CommentRepository 定义了评论数据的持久化操作接口。
type CommentRepository interface {
	// 写入一条已通过准入检查的评论，返回带数据库 ID 的完整模型
	Create(ctx context.Context, prepared *model.PreparedComment) (*model.Comment, error)

	// 根据数据库ID查找单条评论
	FindByID(ctx context.Context, id uint) (*model.Comment, error)

	// 更新单条评论的状态
	UpdateStatus(ctx context.Context, id uint, approved string) (*model.Comment, error)

	// 统计某条评论的直接子评论数量
	CountChildren(ctx context.Context, parentID uint) (int64, error)

	// 统计与探针匹配的重复评论数量
	CountDuplicates(ctx context.Context, probe DuplicateProbe) (int64, error)

	// 查找作者（按邮箱，匿名时按昵称）最近一条评论的时间，用于灌水检测
	LastCommentTime(ctx context.Context, authorEmail, authorName string) (*time.Time, error)

	// 判断该作者是否有过已通过审核的评论
	HasApprovedAuthor(ctx context.Context, authorEmail, authorName string) (bool, error)

	// 物理删除早于给定时间进入回收站的评论，返回删除条数
	DeleteTrashBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
