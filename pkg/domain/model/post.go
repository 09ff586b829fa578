/*
 * @Description: 文章领域模型（评论归属校验所需的最小投影）
 * @Author: 安知鱼
 * @Date: 2025-11-03 10:30:02
 * @LastEditTime: 2026-06-20 14:08:31
 * @LastEditors: 安知鱼
 */
package model

// 文章发布状态。
const (
	PostStatusPublish = "publish"
	PostStatusDraft   = "draft"
	PostStatusPrivate = "private"
	PostStatusTrash   = "trash"
)

// 文章评论开关。
const (
	CommentStatusOpen   = "open"
	CommentStatusClosed = "closed"
)

// Post 是文章在评论服务中的投影。
// 评论创建只关心文章是否存在、是否已发布、是否开放评论。
type Post struct {
	ID            uint
	AuthorID      uint
	Title         string
	Type          string
	Status        string
	CommentStatus string
}

// IsPublished 判断文章是否处于已发布状态。
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublish
}

// CommentsOpen 判断文章是否开放评论。
func (p *Post) CommentsOpen() bool {
	return p.CommentStatus == CommentStatusOpen
}
