/*
 * @Description: 评论核心领域模型
 * @Author: 安知鱼
 * @Date: 2025-11-03 10:22:18
 * @LastEditTime: 2026-07-14 21:40:55
 * @LastEditors: 安知鱼
 */
package model

import "time"

// 评论审核状态。沿用数据库中的字符串表示，避免在持久层和接口层之间来回转换。
const (
	ApprovedPending  = "0"     // 待审核
	ApprovedApproved = "1"     // 已通过
	ApprovedSpam     = "spam"  // 垃圾评论
	ApprovedTrash    = "trash" // 已移入回收站
)

// TypeComment 是目前唯一允许写入的评论类型。
const TypeComment = "comment"

// Author 聚合了评论作者的身份信息。
// 匿名评论时 Name/Email 来自请求体，登录评论时从用户资料回填。
type Author struct {
	Name      string
	Email     string
	URL       string
	IP        string
	UserAgent string
}

// Comment 是评论的核心领域模型，对应数据表中的一行。
type Comment struct {
	ID       uint
	PostID   uint // 所属文章 ID
	ParentID uint // 父评论 ID，0 表示顶级评论
	UserID   uint // 发表评论的用户 ID，0 表示匿名

	Author  Author
	Content string // 原始内容，渲染在响应构建阶段完成
	Type    string

	Approved string // "0" / "1" / "spam" / "trash"

	Date    time.Time // 站点本地时间
	DateGMT time.Time
}

// IsApproved 判断评论是否已通过审核。
func (c *Comment) IsApproved() bool {
	return c.Approved == ApprovedApproved
}

// IsTopLevel 判断是否为顶级评论。
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == 0
}

// PreparedComment 是通过全部准入检查、即将写入数据库的评论。
// 它与 Comment 分开，是为了让校验管线的产物有一个明确的类型边界：
// 只有 PreparedComment 才允许进入仓储层的 Create。
type PreparedComment struct {
	PostID   uint
	ParentID uint
	UserID   uint

	Author  Author
	Content string
	Type    string

	Approved string

	Date    time.Time
	DateGMT time.Time
}
