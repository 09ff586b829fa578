package task

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/robfig/cron/v3"
)

type namedJob struct {
	ran bool
}

func (j *namedJob) Name() string { return "清理回收站" }
func (j *namedJob) Run()         { j.ran = true }

func TestLoggingWrapper(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	job := &namedJob{}
	NewLoggingWrapper(logger)(job).Run()

	if !job.ran {
		t.Fatal("被装饰的任务应当被执行")
	}
	out := buf.String()
	if !strings.Contains(out, "清理回收站") {
		t.Errorf("日志应包含任务名称: %s", out)
	}
	if !strings.Contains(out, "run_id") {
		t.Errorf("日志应包含执行ID: %s", out)
	}
	if !strings.Contains(out, "维护任务开始") || !strings.Contains(out, "维护任务结束") {
		t.Errorf("日志应记录任务的开始和结束: %s", out)
	}
}

func TestPanicRecoveryWrapper(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	panicking := cron.FuncJob(func() { panic("连接丢失") })

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic 不应穿透装饰器: %v", r)
		}
	}()
	NewPanicRecoveryWrapper(logger)(panicking).Run()

	out := buf.String()
	if !strings.Contains(out, "连接丢失") {
		t.Errorf("日志应记录 panic 内容: %s", out)
	}
	if !strings.Contains(out, "stack") {
		t.Errorf("日志应携带堆栈: %s", out)
	}
}

func TestJobName_FallsBackToTypeName(t *testing.T) {
	if got := jobName(cron.FuncJob(func() {})); got == "" {
		t.Error("没有自报名称的任务应退回类型名")
	}
	if got := jobName(&namedJob{}); got != "清理回收站" {
		t.Errorf("jobName = %q, 期望使用任务自报名称", got)
	}
}
