package sqlrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
)

func newMockRepo(t *testing.T) (repository.CommentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("创建 sqlmock 失败: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewCommentRepository(sqlxDB), mock
}

func commentRowsFor(c *model.Comment) *sqlmock.Rows {
	return sqlmock.NewRows(commentColumns).AddRow(
		c.ID, c.PostID, c.ParentID, c.UserID,
		c.Author.Name, c.Author.Email, c.Author.URL, c.Author.IP, c.Author.UserAgent,
		c.Content, c.Type, c.Approved, c.Date, c.DateGMT,
	)
}

func TestCommentRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC().Truncate(time.Second)
	prepared := &model.PreparedComment{
		PostID: 5,
		Author: model.Author{
			Name: "访客甲", Email: "guest@example.com",
			IP: "203.0.113.9", UserAgent: "Mozilla/5.0",
		},
		Content:  "你好",
		Type:     model.TypeComment,
		Approved: model.ApprovedApproved,
		Date:     now,
		DateGMT:  now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments")).
		WithArgs(
			prepared.PostID, prepared.ParentID, prepared.UserID,
			prepared.Author.Name, prepared.Author.Email, prepared.Author.URL,
			prepared.Author.IP, prepared.Author.UserAgent,
			prepared.Content, prepared.Type, prepared.Approved,
			prepared.Date, prepared.DateGMT,
		).
		WillReturnResult(sqlmock.NewResult(42, 1))

	stored := &model.Comment{
		ID: 42, PostID: 5, Author: prepared.Author,
		Content: "你好", Type: model.TypeComment, Approved: model.ApprovedApproved,
		Date: now, DateGMT: now,
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, post_id")).
		WithArgs(uint(42)).
		WillReturnRows(commentRowsFor(stored))

	created, err := repo.Create(context.Background(), prepared)
	if err != nil {
		t.Fatalf("插入评论失败: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("ID = %d, 期望回读自增ID", created.ID)
	}
	if created.Author.Email != "guest@example.com" {
		t.Errorf("Email = %q", created.Author.Email)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("未满足的预期: %v", err)
	}
}

func TestCommentRepo_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, post_id")).
		WithArgs(uint(999)).
		WillReturnRows(sqlmock.NewRows(commentColumns))

	_, err := repo.FindByID(context.Background(), 999)
	if !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("错误 = %v, 期望 ErrNotFound", err)
	}
}

func TestCommentRepo_UpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET approved")).
		WithArgs(model.ApprovedSpam, uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored := &model.Comment{ID: 42, PostID: 5, Type: model.TypeComment, Approved: model.ApprovedSpam}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, post_id")).
		WithArgs(uint(42)).
		WillReturnRows(commentRowsFor(stored))

	updated, err := repo.UpdateStatus(context.Background(), 42, model.ApprovedSpam)
	if err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}
	if updated.Approved != model.ApprovedSpam {
		t.Errorf("Approved = %q", updated.Approved)
	}
}

func TestCommentRepo_UpdateStatus_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET approved")).
		WithArgs(model.ApprovedSpam, uint(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateStatus(context.Background(), 404, model.ApprovedSpam)
	if !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("错误 = %v, 期望 ErrNotFound", err)
	}
}

func TestCommentRepo_CountDuplicates(t *testing.T) {
	repo, mock := newMockRepo(t)

	// 回收站内的评论不计入查重
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments")).
		WithArgs(
			uint(5), uint(0), "你好", model.ApprovedTrash,
			"访客甲", "guest@example.com",
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountDuplicates(context.Background(), repository.DuplicateProbe{
		PostID:      5,
		AuthorName:  "访客甲",
		AuthorEmail: "guest@example.com",
		Content:     "你好",
	})
	if err != nil {
		t.Fatalf("查重失败: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, 期望 2", count)
	}
}

func TestCommentRepo_LastCommentTime(t *testing.T) {
	repo, mock := newMockRepo(t)

	last := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date_gmt FROM comments")).
		WithArgs("guest@example.com", "访客甲").
		WillReturnRows(sqlmock.NewRows([]string{"date_gmt"}).AddRow(last))

	got, err := repo.LastCommentTime(context.Background(), "guest@example.com", "访客甲")
	if err != nil {
		t.Fatalf("查询最近评论时间失败: %v", err)
	}
	if got == nil || !got.Equal(last) {
		t.Errorf("时间 = %v, 期望 %v", got, last)
	}
}

func TestCommentRepo_LastCommentTime_NoIdentity(t *testing.T) {
	repo, mock := newMockRepo(t)

	got, err := repo.LastCommentTime(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("无身份信息时应返回 nil, 实际 %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("无身份信息时不应触达数据库: %v", err)
	}
}

func TestCommentRepo_HasApprovedAuthor(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments")).
		WithArgs("guest@example.com", "访客甲", model.ApprovedApproved).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.HasApprovedAuthor(context.Background(), "guest@example.com", "访客甲")
	if err != nil {
		t.Fatalf("查询历史审核记录失败: %v", err)
	}
	if !ok {
		t.Error("有通过记录的作者应返回 true")
	}
}

func TestCommentRepo_DeleteTrashBefore(t *testing.T) {
	repo, mock := newMockRepo(t)

	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(model.ApprovedTrash, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	affected, err := repo.DeleteTrashBefore(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("清理回收站失败: %v", err)
	}
	if affected != 7 {
		t.Errorf("删除行数 = %d, 期望 7", affected)
	}
}
