package services

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"taskhive/taskhive/testutils"
)

func TestGetUserById_Success(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(userID.String(), "user", "user@example.com", "hash", time.Now(), time.Now()))

	userService := &UserService{}
	user, err := userService.GetUserById(db, userID.String())
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserById_NotFound(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(id.String(), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	userService := &UserService{}
	_, err := userService.GetUserById(db, id.String())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsers_EmailFilter(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New().String(), "user", "user@example.com", "hash", time.Now(), time.Now()))

	userService := &UserService{}
	users, err := userService.GetUsers(db, map[string]interface{}{"email": "user@example.com"})
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
