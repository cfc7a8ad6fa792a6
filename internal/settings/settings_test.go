package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, "Baba Dairy", s.StoreName)
	assert.Equal(t, float64(5), s.TaxRatePercent)
	assert.Equal(t, int64(4000), s.DeliveryCents)
	assert.Equal(t, "ORD", s.OrderPrefix)
	assert.True(t, s.EnableCOD)
	assert.True(t, s.EnableNotifications)
	assert.False(t, s.EnableCard)
}

func TestUpdateApply(t *testing.T) {
	t.Run("empty update changes nothing", func(t *testing.T) {
		s := Defaults()
		Update{}.Apply(&s)
		assert.Equal(t, Defaults(), s)
	})

	t.Run("merges only the set fields", func(t *testing.T) {
		s := Defaults()
		name := "Baba Dairy & Sweets"
		tax := 12.0
		cod := false
		cats := []string{"ghee", "paneer", "sweets"}
		Update{
			StoreName:         &name,
			TaxRatePercent:    &tax,
			EnableCOD:         &cod,
			ProductCategories: &cats,
		}.Apply(&s)

		assert.Equal(t, "Baba Dairy & Sweets", s.StoreName)
		assert.Equal(t, 12.0, s.TaxRatePercent)
		assert.False(t, s.EnableCOD)
		assert.Equal(t, cats, s.ProductCategories)
		assert.Equal(t, int64(4000), s.DeliveryCents)
		assert.Equal(t, "INV", s.InvoicePrefix)
	})

	t.Run("booleans can be switched off", func(t *testing.T) {
		s := Defaults()
		off := true
		Update{EnableCard: &off}.Apply(&s)
		assert.True(t, s.EnableCard)
		off = false
		Update{EnableCard: &off, EnableUPI: &off}.Apply(&s)
		assert.False(t, s.EnableCard)
		assert.False(t, s.EnableUPI)
	})
}

func TestPublicProjection(t *testing.T) {
	s := Defaults()
	s.StoreGSTIN = "29ABCDE1234F1Z5"
	s.LowStockThreshold = 3

	pub := s.Public()

	assert.Equal(t, "Baba Dairy", pub["storeName"])
	assert.Equal(t, int64(4000), pub["deliveryCents"])
	_, hasGSTIN := pub["storeGstin"]
	assert.False(t, hasGSTIN, "GSTIN must not be exposed")
	_, hasThreshold := pub["lowStockThreshold"]
	assert.False(t, hasThreshold)
	_, hasNotif := pub["enableNotifications"]
	assert.False(t, hasNotif)
}
