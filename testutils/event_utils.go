package testutils

import (
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

// MockEventInsert returns the rows gorm reads back from an outbox event
// insert (the id column is fetched via RETURNING because of its column
// default).
func MockEventInsert() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(uuid.New())
}
