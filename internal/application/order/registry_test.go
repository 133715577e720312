package order

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_StartReemplazaBorrador(t *testing.T) {
	r := NewRegistry(KindSales, NewSalesDraft, time.Minute)
	d := r.Start("sid-1", nil)
	d.SelectCustomer(3)

	got, ok := r.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, int64(3), got.CustomerID)

	fresh := r.Start("sid-1", nil)
	assert.Equal(t, int64(0), fresh.CustomerID)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_WithCreaYSerializa(t *testing.T) {
	c := testCatalog()
	r := NewRegistry(KindSales, NewSalesDraft, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With("sid-1", func(d *SalesDraft) error {
				d.SelectProduct(9)
				d.SetQuantity(1)
				return d.AddItem(c)
			})
		}()
	}
	wg.Wait()

	d, ok := r.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, []SalesLine{{ProductID: 9, Quantity: 5}}, d.Lines())
}

func TestRegistry_Sweep(t *testing.T) {
	r := NewRegistry(KindPurchase, NewPurchaseDraft, 10*time.Minute)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }
	r.Start("viejo", nil)
	r.now = func() time.Time { return base.Add(8 * time.Minute) }
	r.Start("nuevo", nil)

	assert.Equal(t, 1, r.Sweep(base.Add(15*time.Minute)))
	_, ok := r.Get("viejo")
	assert.False(t, ok)
	_, ok = r.Get("nuevo")
	assert.True(t, ok)
}

func TestDrafts_DiscardAllConserva(t *testing.T) {
	d := NewDrafts(time.Minute)
	d.Sales.Start("sid-1", nil)
	d.Purchase.Start("sid-1", nil)

	d.DiscardAll("sid-1", KindSales)
	_, ok := d.Sales.Get("sid-1")
	assert.True(t, ok)
	_, ok = d.Purchase.Get("sid-1")
	assert.False(t, ok)

	d.DiscardAll("sid-1", "")
	_, ok = d.Sales.Get("sid-1")
	assert.False(t, ok)
}

func TestRegistry_UpdateNoCrea(t *testing.T) {
	r := NewRegistry(KindSales, NewSalesDraft, time.Minute)

	called := false
	err := r.Update("sid-1", func(*SalesDraft) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.False(t, called)
	assert.Equal(t, 0, r.Len())

	r.Start("sid-1", nil)
	require.NoError(t, r.Update("sid-1", func(d *SalesDraft) error { d.SelectCustomer(3); return nil }))
	d, _ := r.Get("sid-1")
	assert.Equal(t, int64(3), d.CustomerID)
}

func TestRegistry_StartInicializaAntesDePublicar(t *testing.T) {
	r := NewRegistry(KindSales, NewSalesDraft, time.Minute)
	d := r.Start("sid-1", func(d *SalesDraft) { d.SelectCustomer(9) })
	assert.Equal(t, int64(9), d.CustomerID)

	got, ok := r.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, int64(9), got.CustomerID)
}
