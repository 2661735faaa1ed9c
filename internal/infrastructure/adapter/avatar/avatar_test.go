package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

func TestURL(t *testing.T) {
	assert.Equal(t,
		"https://avatar.iran.liara.run/public/boy?username=bob",
		URL("bob", entity.GenderMale))

	assert.Equal(t,
		"https://avatar.iran.liara.run/public/girl?username=alice",
		URL("alice", entity.GenderFemale))

	assert.Equal(t,
		"https://avatar.iran.liara.run/public?username=pat",
		URL("pat", "unknown"))

	// Usernames are query-escaped
	assert.Equal(t,
		"https://avatar.iran.liara.run/public/boy?username=a+b%26c",
		URL("a b&c", entity.GenderMale))
}
