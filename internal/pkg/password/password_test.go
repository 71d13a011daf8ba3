package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, Verify("hunter2hunter2", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("hunter2hunter2", "not-a-bcrypt-hash"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("hunter2hunter2")
	assert.NoError(t, err)
	h2, err := Hash("hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
