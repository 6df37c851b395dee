package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	login, password := Unpack2(strings.SplitN("clerk:s3cr:et", ":", 2))
	assert.Equal(t, "clerk", login)
	assert.Equal(t, "s3cr:et", password)

	login, password = Unpack2(strings.SplitN("clerk", ":", 2))
	assert.Equal(t, "clerk", login)
	assert.Empty(t, password)

	login, password = Unpack2([]string(nil))
	assert.Empty(t, login)
	assert.Empty(t, password)
}

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange(1, 1, 10))
	assert.True(t, IsInRange(1, 10, 10))
	assert.False(t, IsInRange(1, 11, 10))
	assert.False(t, IsInRange(0.5, 0.25, 1))
}
