/*
 * @Description: 数据库迁移服务（建表与索引）
 * @Author: 安知鱼
 * @Date: 2025-11-08
 */
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// MigrationService 数据库迁移服务
type MigrationService struct {
	db     *sql.DB
	dbType string
}

// NewMigrationService 创建迁移服务
func NewMigrationService(db *sql.DB, dbType string) *MigrationService {
	return &MigrationService{
		db:     db,
		dbType: dbType,
	}
}

// RunMigrations 执行所有迁移
func (m *MigrationService) RunMigrations(ctx context.Context) error {
	log.Println("📋 开始执行数据库迁移...")

	for _, stmt := range m.schemaStatements() {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			// 重复创建索引在 MySQL 下没有 IF NOT EXISTS，按已存在处理
			if strings.Contains(err.Error(), "Duplicate key name") {
				continue
			}
			return fmt.Errorf("执行迁移语句失败: %w", err)
		}
	}

	log.Println("✅ 数据库迁移完成")
	return nil
}

// schemaStatements 返回当前方言的建表语句
func (m *MigrationService) schemaStatements() []string {
	autoPK := "INTEGER PRIMARY KEY AUTOINCREMENT"
	textType := "TEXT"
	datetime := "DATETIME"
	switch m.dbType {
	case "mysql", "mariadb":
		autoPK = "BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT"
		textType = "TEXT"
		datetime = "DATETIME"
	case "postgres":
		autoPK = "BIGSERIAL PRIMARY KEY"
		textType = "TEXT"
		datetime = "TIMESTAMP"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS settings (
			id %s,
			created_at %s,
			updated_at %s,
			config_key VARCHAR(191) NOT NULL UNIQUE,
			value %s,
			comment VARCHAR(255) NOT NULL DEFAULT ''
		)`, autoPK, datetime, datetime, textType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			created_at %s,
			updated_at %s,
			username VARCHAR(100) NOT NULL UNIQUE,
			nickname VARCHAR(100) NOT NULL DEFAULT '',
			email VARCHAR(100) NOT NULL DEFAULT '',
			website VARCHAR(200) NOT NULL DEFAULT '',
			last_login_at %s NULL,
			user_group_id BIGINT NOT NULL DEFAULT 2,
			status INT NOT NULL DEFAULT 1
		)`, autoPK, datetime, datetime, datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS posts (
			id %s,
			author_id BIGINT NOT NULL DEFAULT 0,
			title VARCHAR(255) NOT NULL DEFAULT '',
			type VARCHAR(20) NOT NULL DEFAULT 'post',
			status VARCHAR(20) NOT NULL DEFAULT 'publish',
			comment_status VARCHAR(20) NOT NULL DEFAULT 'open'
		)`, autoPK),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS comments (
			id %s,
			post_id BIGINT NOT NULL,
			parent_id BIGINT NOT NULL DEFAULT 0,
			user_id BIGINT NOT NULL DEFAULT 0,
			author_name VARCHAR(245) NOT NULL DEFAULT '',
			author_email VARCHAR(100) NOT NULL DEFAULT '',
			author_url VARCHAR(200) NOT NULL DEFAULT '',
			author_ip VARCHAR(100) NOT NULL DEFAULT '',
			author_user_agent VARCHAR(255) NOT NULL DEFAULT '',
			content %s,
			type VARCHAR(20) NOT NULL DEFAULT 'comment',
			approved VARCHAR(20) NOT NULL DEFAULT '1',
			date %s NOT NULL,
			date_gmt %s NOT NULL
		)`, autoPK, textType, datetime, datetime),
	}

	// 索引语句。SQLite 与 PostgreSQL 支持 IF NOT EXISTS，MySQL 靠错误兜底
	indexPrefix := "CREATE INDEX IF NOT EXISTS"
	if m.dbType == "mysql" || m.dbType == "mariadb" {
		indexPrefix = "CREATE INDEX"
	}
	stmts = append(stmts,
		fmt.Sprintf("%s idx_comments_post_id ON comments(post_id)", indexPrefix),
		fmt.Sprintf("%s idx_comments_parent_id ON comments(parent_id)", indexPrefix),
		fmt.Sprintf("%s idx_comments_author_email ON comments(author_email)", indexPrefix),
		fmt.Sprintf("%s idx_comments_approved_date ON comments(approved, date_gmt)", indexPrefix),
	)

	return stmts
}
