/*
 * @Description: 新评论产生后向站点管理员派发通知。
 * @Author: 安知鱼
 * @Date: 2025-08-12 10:23:55
 * @LastEditTime: 2025-08-25 10:12:40
 * @LastEditors: 安知鱼
 */
// internal/app/task/job_comment_notification.go
package task

import (
	"context"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
)

// CommentNotificationJob 负责在新评论产生后通知管理员。
type CommentNotificationJob struct {
	commentRepo  repository.CommentRepository
	settingSvc   setting.SettingService
	newCommentID uint
}

// NewCommentNotificationJob 是任务的构造函数
func NewCommentNotificationJob(
	commentRepo repository.CommentRepository,
	settingSvc setting.SettingService,
	newCommentID uint,
) *CommentNotificationJob {
	return &CommentNotificationJob{
		commentRepo:  commentRepo,
		settingSvc:   settingSvc,
		newCommentID: newCommentID,
	}
}

// Run 方法执行通知派发逻辑。
func (j *CommentNotificationJob) Run() {
	if !j.settingSvc.GetBool(constant.KeyCommentNotifyDB.String()) {
		return
	}

	ctx := context.Background()

	// 1. 获取新评论的完整信息
	newComment, err := j.commentRepo.FindByID(ctx, j.newCommentID)
	if err != nil {
		log.Printf("错误: 任务 '%s' 获取新评论失败: %v", j.Name(), err)
		return
	}

	// 2. 如果是回复，获取父评论信息
	var parentComment *model.Comment
	if newComment.ParentID > 0 {
		parentComment, err = j.commentRepo.FindByID(ctx, newComment.ParentID)
		if err != nil {
			log.Printf("警告: 任务 '%s' 获取父评论失败: %v", j.Name(), err)
		}
	}

	// 3. 按配置的渠道推送；渠道留空时只记录日志。
	channel := j.settingSvc.Get(constant.KeyPushooChannel.String())
	summary := fmt.Sprintf("新评论 #%d（文章 %d，作者 %s，状态 %s）",
		newComment.ID, newComment.PostID, newComment.Author.Name, newComment.Approved)
	if parentComment != nil {
		summary += fmt.Sprintf("，回复 @%s", parentComment.Author.Name)
	}

	if channel == "" {
		log.Printf("【提示】%s", summary)
		return
	}
	log.Printf("【提示】通过渠道 '%s'（%s）推送通知: %s",
		channel, j.settingSvc.Get(constant.KeyPushooURL.String()), summary)
}

// Name 方法返回任务的可读名称。
func (j *CommentNotificationJob) Name() string {
	return fmt.Sprintf("CommentNotificationJob(CommentID: %d)", j.newCommentID)
}
