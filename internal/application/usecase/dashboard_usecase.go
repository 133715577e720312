package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
)

// DashboardUseCase arma la página principal a partir de tres endpoints independientes.
type DashboardUseCase struct{}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase() *DashboardUseCase {
	return &DashboardUseCase{}
}

// Load pide métricas, KPIs y series en paralelo. El primer error cancela el resto.
func (uc *DashboardUseCase) Load(ctx context.Context, api ports.DashboardAPI) (*dto.DashboardView, error) {
	view := &dto.DashboardView{}
	g, gctx := errgroup.WithContext(ctx)

	// ── Métricas ──
	g.Go(func() error {
		m, err := api.DashboardMetrics(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: métricas: %w", err)
		}
		view.Metrics = *m
		return nil
	})

	// ── KPIs del mes ──
	g.Go(func() error {
		k, err := api.DashboardKPIs(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: kpis: %w", err)
		}
		view.KPIs = *k
		return nil
	})

	// ── Gráficos ──
	g.Go(func() error {
		c, err := api.DashboardCharts(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: gráficos: %w", err)
		}
		view.Charts = *c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}
