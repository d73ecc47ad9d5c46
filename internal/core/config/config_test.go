package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "admin", c.Admin.DefaultUsername)
	assert.Equal(t, "admin123", c.Admin.DefaultPassword)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.False(t, c.Order.RepriceFromCatalog)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  http:
    port: 9090
jwt:
  secret: from-file
  access_token_ttl_min: 30
order:
  reprice_from_catalog: true
`), 0o644))
	t.Setenv("APP_JWT_SECRET", "from-env")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, 30, c.JWT.AccessTokenTTLMin)
	assert.True(t, c.Order.RepriceFromCatalog)
	assert.Equal(t, "brewbuy.orders", c.Kafka.OrderTopic)
	assert.Equal(t, 2000, c.Kafka.PublishTimeoutMS)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
