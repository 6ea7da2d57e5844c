package bloom_test

import (
	"testing"

	"github.com/pagesift/pagesift/bloom"
	"github.com/stretchr/testify/assert"
)

func TestDoorkeeper_Admit(t *testing.T) {
	t.Parallel()

	d := bloom.NewDoorkeeper(1000, 0.01)

	assert.False(t, d.Admit("key-a"), "first sighting must not admit")
	assert.True(t, d.Admit("key-a"), "second sighting must admit")
	assert.False(t, d.Admit("key-b"), "unrelated key must not admit")
}

func TestDoorkeeper_Reset(t *testing.T) {
	t.Parallel()

	d := bloom.NewDoorkeeper(1000, 0.01)
	d.Admit("key-a")
	d.Reset()

	assert.Zero(t, d.EstimatedCount())
	assert.False(t, d.Admit("key-a"))
}
