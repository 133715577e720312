package order

import (
	"strings"

	"github.com/jhoicas/Inventario-web/internal/domain"
)

// ValidationError rechazo local del borrador; el borrador queda sin cambios.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrValidation
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ValidationErrors agrupa varios rechazos del submit.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (es ValidationErrors) Is(target error) bool {
	return target == domain.ErrValidation
}

func (es ValidationErrors) orNil() error {
	if len(es) == 0 {
		return nil
	}
	return es
}
