/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2025-08-25 10:12:40
 * @LastEditors: 安知鱼
 */
// internal/app/task/jobs.go
package task

// Job 是后台任务的统一抽象。
// 它与 cron.Job 接口兼容。
type Job interface {
	Run()
	Name() string
}
