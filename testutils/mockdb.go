package testutils

import (
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskhive/taskhive/database"
)

// SetupMockDB opens a gorm connection backed by sqlmock. The returned
// cleanup function closes the underlying connection; expectations are
// checked by the caller.
func SetupMockDB() (*database.Database, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cleanup := func() {
		sqlDB.Close()
	}

	return &database.Database{DB: gormDB}, mock, cleanup
}
