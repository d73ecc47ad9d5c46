package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbuy/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

func TestCreateProductRoundTripsPrice(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()

	p, err := f.products.Create(ctx, ProductInput{Name: "IPA", Price: dec("5.50"), Quantity: 10})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("5.50")), got.Price.String())
	assert.Equal(t, "5.50", got.Price.StringFixed(2))
	assert.Equal(t, 10, got.Quantity)
}

func TestCreateProductImage(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	enc := base64.StdEncoding.EncodeToString(pngBytes)

	p, err := f.products.Create(ctx, ProductInput{Name: "Stout", Price: dec("4"), ImageBase64: enc, ImageType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, pngBytes, p.ImageData)
	assert.Equal(t, "image/png", p.ImageType)

	p, err = f.products.Create(ctx, ProductInput{Name: "Lager", Price: dec("3"), ImageBase64: "data:image/jpeg;base64," + enc})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", p.ImageType)

	_, err = f.products.Create(ctx, ProductInput{Name: "Bad", Price: dec("1"), ImageBase64: "%%%not-base64"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	all, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "rejected create must not persist")
}

func TestProductValidation(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	for _, in := range []ProductInput{
		{Price: dec("1")},
		{Name: "x", Price: dec("-0.01")},
		{Name: "x", Price: dec("1"), Quantity: -1},
		{Name: "x", Price: dec("0.005")},
	} {
		_, err := f.products.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	p, err := f.products.Create(ctx, ProductInput{Name: "Mild", Price: dec("3.10")})
	require.NoError(t, err)
	_, err = f.products.Update(ctx, p.ID, ProductInput{Name: "Mild", Price: dec("3.105")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.products.CreateBatch(ctx, []ProductInput{{Name: "ok", Price: dec("1")}, {Name: "bad", Price: dec("1.001")}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProductToleratesBadImage(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	p, err := f.products.Create(ctx, ProductInput{
		Name: "Porter", Price: dec("6.00"), Quantity: 1,
		ImageBase64: base64.StdEncoding.EncodeToString(pngBytes), ImageType: "image/png",
	})
	require.NoError(t, err)

	got, err := f.products.Update(ctx, p.ID, ProductInput{Name: "Porter XL", Price: dec("7.25"), Quantity: 3, ImageBase64: "***"})
	require.NoError(t, err)
	assert.Equal(t, "Porter XL", got.Name)
	assert.True(t, got.Price.Equal(dec("7.25")))
	assert.Equal(t, pngBytes, got.ImageData, "old image kept")

	_, err = f.products.Update(ctx, 9999, ProductInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBatchDropsOnlyBadImages(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ps, err := f.products.CreateBatch(context.Background(), []ProductInput{
		{Name: "A", Price: dec("1.10"), ImageBase64: "!!!"},
		{Name: "B", Price: dec("2.20"), ImageBase64: base64.StdEncoding.EncodeToString(pngBytes)},
	})
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.NotZero(t, ps[0].ID)
	assert.NotZero(t, ps[1].ID)
	assert.Nil(t, ps[0].ImageData)
	assert.Equal(t, pngBytes, ps[1].ImageData)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	p, err := f.products.Create(ctx, ProductInput{Name: "Gone", Price: dec("1")})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	_, err = f.products.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.products.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestCreateClearsCachedMiss(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()

	_, err := f.products.Get(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	raw, ok := f.cache.Raw(productKey(1))
	require.True(t, ok)
	assert.Equal(t, "null", raw)

	p, err := f.products.Create(ctx, ProductInput{Name: "Saison", Price: dec("4.40")})
	require.NoError(t, err)
	require.Equal(t, uint(1), p.ID)
	got, err := f.products.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Saison", got.Name)

	_, err = f.products.Get(ctx, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.products.Get(ctx, 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
	ps, err := f.products.CreateBatch(ctx, []ProductInput{{Name: "Gose", Price: dec("3")}, {Name: "Bock", Price: dec("5")}})
	require.NoError(t, err)
	for _, p := range ps {
		got, err := f.products.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
	}
}

func TestUpdateRefreshesCachedProduct(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	p, err := f.products.Create(ctx, ProductInput{Name: "Kolsch", Price: dec("4.00")})
	require.NoError(t, err)
	_, err = f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	_, ok := f.cache.Raw(productKey(p.ID))
	require.True(t, ok)

	_, err = f.products.Update(ctx, p.ID, ProductInput{Name: "Kolsch", Price: dec("4.50")})
	require.NoError(t, err)
	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("4.50")), got.Price.String())
}
