package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"LOW", "NORMAL", "HIGH"} {
		prio, ok := ParsePriority(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Priority(valid), prio)
	}

	for _, invalid := range []string{"", "URGENT", "low", "Normal", "MEDIUM"} {
		_, ok := ParsePriority(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestTaskUpdateIsEmpty(t *testing.T) {
	assert.True(t, TaskUpdate{}.IsEmpty())

	desc := "x"
	assert.False(t, TaskUpdate{Description: &desc}.IsEmpty())

	completed := false
	assert.False(t, TaskUpdate{IsCompleted: &completed}.IsEmpty())

	assignee := uuid.New()
	assert.False(t, TaskUpdate{AssigneeID: &assignee}.IsEmpty())
}
