package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-web/pkg/config"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

func TestSetup_SinEndpointEsNoop(t *testing.T) {
	shutdown := Setup(context.Background(), "inventario-web", config.TelemetryConfig{}, logger.Nop())
	assert.NoError(t, shutdown(context.Background()))
}
