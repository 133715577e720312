package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

func TestReportKind_FilenameFijo(t *testing.T) {
	name, ok := ReportSalesOrders.Filename()
	assert.True(t, ok)
	assert.Equal(t, "ventas.xlsx", name)

	_, ok = ReportKind("invoices").Filename()
	assert.False(t, ok)

	assert.True(t, ReportSuppliers.Emailable())
	assert.False(t, ReportPurchaseOrders.Emailable())
	assert.Len(t, ReportKinds(), 5)
}

func TestOAuthErrorMessage(t *testing.T) {
	assert.Equal(t, "Parámetros inválidos en el callback.", OAuthErrorMessage("invalid_params"))
	assert.Equal(t, "Hubo un problema al conectar con Mercado Libre.", OAuthErrorMessage("otro"))
}

func TestIntegrationView_Expired(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	v := IntegrationView{Integration: entity.Integration{ExpiresAt: now.Add(time.Hour)}}
	assert.False(t, v.Expired(now))
	assert.True(t, v.Expired(now.Add(2*time.Hour)))
	v.IsExpired = true
	assert.True(t, v.Expired(now))
}
