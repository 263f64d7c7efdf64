package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarInitials(t *testing.T) {
	assert.Equal(t, "JD", AvatarInitials("jdoe"))
	assert.Equal(t, "AL", AvatarInitials("alice"))
	assert.Equal(t, "A", AvatarInitials("a"))
	assert.Equal(t, "", AvatarInitials(""))
	assert.Equal(t, "ÉL", AvatarInitials("élise"))
}
