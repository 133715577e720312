package usecase

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-web/internal/domain"
)

// ErrInvalidCredentials la API rechazó email/contraseña en el login.
var ErrInvalidCredentials = errors.New("email o contraseña incorrectos")

// ErrEmailTaken la API respondió 409 al registrar.
var ErrEmailTaken = errors.New("El email ya está registrado")

// ErrAutoLoginFailed el registro funcionó pero el login automático posterior no.
var ErrAutoLoginFailed = errors.New("cuenta creada; iniciá sesión para continuar")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormError errores de validación por campo, detectados antes de llamar a la API.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *FormError) Is(target error) bool { return target == domain.ErrValidation }

type formErrors map[string]string

func (f formErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f formErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &FormError{Fields: f}
}

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}
