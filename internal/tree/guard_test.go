package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oziev02/threadtree/internal/domain"
)

func TestCanModify(t *testing.T) {
	node := NewComment(1, "alice", "x")

	assert.True(t, CanModify(node, "alice"))
	assert.False(t, CanModify(node, "bob"))
	assert.False(t, CanModify(node, ""))
	assert.True(t, CanModify(NewComment(2, "", "anon"), ""))
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("hi"))
	assert.ErrorIs(t, ValidateContent(""), domain.ErrEmptyContent)
	assert.ErrorIs(t, ValidateContent(" \n\t "), domain.ErrEmptyContent)
}

func TestIDGeneratorMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1_000)
	g := NewIDGenerator(func() time.Time { return fixed })

	assert.Equal(t, int64(1_000), g.Next())
	assert.Equal(t, int64(1_001), g.Next())
	assert.Equal(t, int64(1_002), g.Next())
}

func TestIDGeneratorObserve(t *testing.T) {
	g := NewIDGenerator(func() time.Time { return time.UnixMilli(10) })

	g.Observe(500)
	assert.Equal(t, int64(501), g.Next())

	g.Observe(3)
	assert.Equal(t, int64(502), g.Next())
}

func TestIDGeneratorUsesClock(t *testing.T) {
	now := time.UnixMilli(50)
	g := NewIDGenerator(func() time.Time { return now })

	assert.Equal(t, int64(50), g.Next())
	now = time.UnixMilli(90)
	assert.Equal(t, int64(90), g.Next())
}
