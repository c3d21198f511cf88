package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestQuery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	err = database.Execute("CREATE TABLE probe (id INTEGER PRIMARY KEY, label TEXT)")
	assert.NoError(t, err)
	err = database.Execute("INSERT INTO probe (label) VALUES (?)", "probe_label")
	assert.NoError(t, err)

	query := "SELECT * FROM probe WHERE label = ?"
	result, err := database.Query(query, "probe_label")
	assert.NoError(t, err)

	var rows []map[string]interface{}
	err = result.Scan(&rows).Error
	assert.NoError(t, err)

	assert.Len(t, rows, 1)
	assert.Equal(t, "probe_label", rows[0]["label"])
}

func TestExecute(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	err = database.Execute("CREATE TABLE probe (id INTEGER PRIMARY KEY, label TEXT)")
	assert.NoError(t, err)

	err = database.Execute("INSERT INTO probe (label) VALUES (?)", "probe_label")
	assert.NoError(t, err)

	var count int64
	err = db.Table("probe").Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
