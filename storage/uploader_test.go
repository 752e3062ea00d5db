package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarKey(t *testing.T) {
	require.Equal(t, "avatars/3.png", AvatarKey(3, ".png"))
	require.Equal(t, "avatars/12.jpg", AvatarKey(12, ".jpg"))
}
