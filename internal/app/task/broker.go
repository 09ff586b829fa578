// internal/app/task/broker.go
package task

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"

	"github.com/robfig/cron/v3"
)

// Broker 是整个后台任务模块的核心协调者。
// 它同时承担两类职责：周期性任务的调度（cron）与一次性任务的异步派发（worker pool）。
type Broker struct {
	cron        *cron.Cron
	logger      *slog.Logger
	jobQueue    chan Job
	commentRepo repository.CommentRepository
	settingSvc  setting.SettingService
}

// NewBroker 是 Broker 的构造函数。
func NewBroker(
	commentRepo repository.CommentRepository,
	settingSvc setting.SettingService,
) *Broker {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "task_broker")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	jobQueue := make(chan Job, 1000)

	broker := &Broker{
		cron:        c,
		logger:      logger,
		jobQueue:    jobQueue,
		commentRepo: commentRepo,
		settingSvc:  settingSvc,
	}

	broker.startWorkerPool()

	return broker
}

// startWorkerPool 启动固定数量的 worker goroutine 来处理任务。
func (b *Broker) startWorkerPool() {
	workerCount := runtime.NumCPU()
	if workerCount <= 0 {
		workerCount = 4
	}
	b.logger.Info("Starting task worker pool", "concurrency", workerCount)

	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		go func() {
			b.logger.Info("Worker started", "worker_id", workerID)
			for job := range b.jobQueue {
				jobWithWrappers := cron.NewChain(
					NewPanicRecoveryWrapper(b.logger),
					NewLoggingWrapper(b.logger),
				).Then(job)

				b.logger.Info("Worker picked up a job", "worker_id", workerID, "job_name", job.Name())
				jobWithWrappers.Run()
				b.logger.Info("Worker finished a job", "worker_id", workerID, "job_name", job.Name())
			}
			b.logger.Info("Worker stopped", "worker_id", workerID)
		}()
	}
}

// Dispatch 将任务发送到队列中。
func (b *Broker) Dispatch(job Job) {
	b.jobQueue <- job
}

// DispatchCommentNotification 派发评论通知任务的方法。
func (b *Broker) DispatchCommentNotification(newCommentID uint) {
	job := NewCommentNotificationJob(b.commentRepo, b.settingSvc, newCommentID)
	b.Dispatch(job)
	b.logger.Info("Successfully queued comment notification job", "comment_id", newCommentID)
}

// RegisterCronJobs 注册所有周期性任务。
func (b *Broker) RegisterCronJobs() {
	b.logger.Info("Registering all periodic jobs...")

	trashCleanupJob := NewCommentTrashCleanupJob(b.commentRepo, b.settingSvc)
	_, err := b.cron.AddJob("0 30 3 * * *", trashCleanupJob) // 每天凌晨3:30执行
	if err != nil {
		b.logger.Error("Failed to add 'CommentTrashCleanupJob'", slog.Any("error", err))
		os.Exit(1)
	}
	b.logger.Info("-> Successfully registered 'CommentTrashCleanupJob'", "schedule", "every day at 3:30:00 AM")

	b.logger.Info("All periodic jobs registered.")
}

// Start 启动 cron 调度器。
func (b *Broker) Start() {
	b.logger.Info("Task broker started.")
	b.cron.Start()
}

// Stop 优雅地停止 cron 调度器和所有 worker。
func (b *Broker) Stop() {
	b.logger.Info("Stopping task broker...")
	ctx := b.cron.Stop()
	<-ctx.Done()
	close(b.jobQueue)
	b.logger.Info("Task broker gracefully stopped.")
}
