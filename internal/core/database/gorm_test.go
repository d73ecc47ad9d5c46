package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	got := normalizeMySQLDSN(
		"jdbc:mysql://db.local:3306/brewbuy?useSSL=false&serverTimezone=UTC&characterEncoding=utf8",
		"root", "s3cret",
	)
	assert.Contains(t, got, "root:s3cret@tcp(db.local:3306)/brewbuy?")
	assert.Contains(t, got, "charset=utf8")
	assert.Contains(t, got, "loc=UTC")
	assert.Contains(t, got, "tls=false")
	assert.Contains(t, got, "parseTime=true")
	assert.NotContains(t, got, "useSSL")

	native := "u:p@tcp(127.0.0.1:3306)/x"
	assert.Equal(t, native, normalizeMySQLDSN(native, "other", "pw"))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(h:3306)/db", maskDSN("root:pw@tcp(h:3306)/db"))
	assert.Equal(t, "plain", maskDSN("plain"))
}

func TestNewGormSQLiteAndMigrate(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: "file:dbtest?mode=memory&cache=shared", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("order_items"))
	assert.True(t, db.Migrator().HasTable("admin_users"))

	_, err = NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
