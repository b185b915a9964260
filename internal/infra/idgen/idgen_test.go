package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID_NewID(t *testing.T) {
	pattern := regexp.MustCompile(`^task-[0-9a-f]{12}$`)
	seen := make(map[string]bool)

	for range 200 {
		id := UUID{}.NewID("task")
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUUID_NewID_Prefixes(t *testing.T) {
	assert.Regexp(t, `^col-`, UUID{}.NewID("col"))
	assert.Regexp(t, `^comment-`, UUID{}.NewID("comment"))
}
