package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := ConnectionID()
		assert.True(t, IsValidConnectionID(id), id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidConnectionID(t *testing.T) {
	assert.False(t, IsValidConnectionID(""))
	assert.False(t, IsValidConnectionID("anonymous1"))
}
