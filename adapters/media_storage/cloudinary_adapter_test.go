package media_storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meetapp/internal/config"
	"github.com/khoahotran/meetapp/pkg/logger"
)

func TestNewCloudinaryAdapter_RequiresCloudName(t *testing.T) {
	_, err := NewCloudinaryAdapter(config.Config{}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestCloudinaryAdapter_TransformURL(t *testing.T) {
	var cfg config.Config
	cfg.Cloudinary.CloudName = "demo"
	cfg.Cloudinary.ApiKey = "key"
	cfg.Cloudinary.ApiSecret = "secret"

	up, err := NewCloudinaryAdapter(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	url, err := up.TransformURL("avatars/abc", "c_thumb,g_face,w_200,h_200")
	require.NoError(t, err)

	assert.Contains(t, url, "https://res.cloudinary.com/demo/image/upload/")
	assert.Contains(t, url, "c_thumb,g_face,w_200,h_200")
	assert.Contains(t, url, "avatars/abc")
}
