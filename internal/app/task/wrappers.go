/*
 * @Description: 维护任务的通用装饰器（执行日志、panic 恢复）。
 * @Author: 安知鱼
 * @Date: 2026-06-18 21:47:30
 * @LastEditTime: 2026-08-24 19:02:11
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobWrapper 是 cron.JobWrapper 的别名，broker 注册任务时逐层套用。
type JobWrapper = cron.JobWrapper

// NewLoggingWrapper 为每次任务执行记录开始、结束和耗时。
// 每次执行分配一个独立的 run_id，同名任务的多次触发在日志里可以区分开。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			runLogger := logger.With(
				slog.String("job", jobName(j)),
				slog.String("run_id", uuid.NewString()),
			)

			started := time.Now()
			runLogger.Info("维护任务开始")
			j.Run()
			runLogger.Info("维护任务结束", slog.Duration("耗时", time.Since(started)))
		})
	}
}

// NewPanicRecoveryWrapper 捕获任务中的 panic 并带堆栈落日志，
// 单个任务崩溃不影响 broker 里的其它任务。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("维护任务 panic",
						slog.String("job", jobName(j)),
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			j.Run()
		})
	}
}

// jobName 取任务的可读名称：实现了 Name() 的用自报名称，否则退回类型名。
func jobName(j cron.Job) string {
	if named, ok := j.(interface{ Name() string }); ok {
		return named.Name()
	}
	t := reflect.TypeOf(j)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
