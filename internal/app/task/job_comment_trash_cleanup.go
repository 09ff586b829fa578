/*
 * @Description: 定期清理回收站中过期的评论。
 * @Author: 安知鱼
 * @Date: 2025-08-20 11:05:18
 * @LastEditTime: 2025-08-25 09:41:33
 * @LastEditors: 安知鱼
 */
// internal/app/task/job_comment_trash_cleanup.go
package task

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
)

// CommentTrashCleanupJob 负责物理删除在回收站中超过保留期的评论。
type CommentTrashCleanupJob struct {
	commentRepo repository.CommentRepository
	settingSvc  setting.SettingService
}

// NewCommentTrashCleanupJob 是任务的构造函数
func NewCommentTrashCleanupJob(
	commentRepo repository.CommentRepository,
	settingSvc setting.SettingService,
) *CommentTrashCleanupJob {
	return &CommentTrashCleanupJob{
		commentRepo: commentRepo,
		settingSvc:  settingSvc,
	}
}

// Run 是 Job 接口要求实现的方法
func (j *CommentTrashCleanupJob) Run() {
	retentionDays := j.settingSvc.GetInt(constant.KeyCommentTrashRetentionDays.String())
	if retentionDays <= 0 {
		log.Printf("任务 '%s' 已禁用（保留天数 <= 0），跳过本次执行。", j.Name())
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	deletedCount, err := j.commentRepo.DeleteTrashBefore(context.Background(), cutoff)
	if err != nil {
		// 日志由 wrapper 统一处理，这里可以只处理错误本身
		log.Printf("任务 '%s' 在执行业务逻辑时捕获到错误: %v", j.Name(), err)
	} else {
		log.Printf("任务 '%s' 业务逻辑执行完毕，共清理了 %d 条过期回收站评论。", j.Name(), deletedCount)
	}
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *CommentTrashCleanupJob) Name() string {
	return "CommentTrashCleanupJob"
}
