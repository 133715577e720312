package dto

import "github.com/jhoicas/Inventario-web/internal/domain/entity"

// DashboardView todo lo que muestra la página principal.
type DashboardView struct {
	Metrics entity.DashboardMetrics
	KPIs    entity.DashboardKPIs
	Charts  entity.ChartData
}
