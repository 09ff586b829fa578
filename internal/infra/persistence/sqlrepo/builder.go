// internal/infra/persistence/sqlrepo/builder.go
package sqlrepo

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// builderFor 按驱动选择占位符风格：PostgreSQL 用 $N，其余用 ?
func builderFor(db *sqlx.DB) sq.StatementBuilderType {
	if db.DriverName() == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
