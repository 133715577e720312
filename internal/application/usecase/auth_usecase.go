package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

const minPasswordLen = 8

// SessionWriter parte de la sesión que modifican login y logout.
type SessionWriter interface {
	Login(ctx context.Context, token string, user entity.User) error
	Logout(ctx context.Context) error
}

// AuthUseCase login, registro con auto-login y logout contra la API.
type AuthUseCase struct {
	api ports.InventoryAPIFactory
	log *logger.Logger
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(api ports.InventoryAPIFactory, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{api: api, log: log.Child("auth")}
}

// Login autentica contra la API y persiste la sesión.
// Un 401 de /users/login significa credenciales inválidas, no sesión vencida.
func (uc *AuthUseCase) Login(ctx context.Context, sess SessionWriter, req dto.LoginRequest) (*entity.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	fe := formErrors{}
	if req.Email == "" {
		fe.add("email", "El email es obligatorio")
	}
	if req.Password == "" {
		fe.add("password", "La contraseña es obligatoria")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	resp, err := uc.api.For(nil).Login(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := sess.Login(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("auth: guardar sesión: %w", err)
	}
	uc.log.Info().Int64("user_id", resp.User.ID).Str("role", resp.User.Role).Msg("login")
	return &resp.User, nil
}

// ValidateRegister reglas del formulario de registro.
func ValidateRegister(form dto.RegisterForm) error {
	fe := formErrors{}
	if strings.TrimSpace(form.Name) == "" {
		fe.add("name", "El nombre es obligatorio")
	}
	if !validEmail(strings.TrimSpace(form.Email)) {
		fe.add("email", "Ingresá un email válido")
	}
	if len(form.Password) < minPasswordLen {
		fe.add("password", fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLen))
	}
	if form.Password != form.ConfirmPassword {
		fe.add("confirm_password", "Las contraseñas no coinciden")
	}
	return fe.err()
}

// Register crea la cuenta y luego inicia sesión automáticamente.
// Si el auto-login falla devuelve ErrAutoLoginFailed (la cuenta sí existe).
func (uc *AuthUseCase) Register(ctx context.Context, sess SessionWriter, form dto.RegisterForm) (*entity.User, error) {
	if err := ValidateRegister(form); err != nil {
		return nil, err
	}
	req := dto.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	}
	if _, err := uc.api.For(nil).Register(ctx, req); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user, err := uc.Login(ctx, sess, dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		uc.log.Warn().Err(err).Str("email", req.Email).Msg("registro ok pero falló el login automático")
		return nil, ErrAutoLoginFailed
	}
	return user, nil
}

// Logout cierra la sesión local (la API no tiene endpoint de logout: el JWT simplemente se descarta).
func (uc *AuthUseCase) Logout(ctx context.Context, sess SessionWriter) error {
	return sess.Logout(ctx)
}

// ValidateCreateUser reglas del alta de usuario por un administrador.
func ValidateCreateUser(req dto.CreateUserRequest) error {
	fe := formErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fe.add("name", "El nombre es obligatorio")
	}
	if !validEmail(strings.TrimSpace(req.Email)) {
		fe.add("email", "Ingresá un email válido")
	}
	if len(req.Password) < minPasswordLen {
		fe.add("password", fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLen))
	}
	if !entity.ValidRole(req.Role) {
		fe.add("role", "Rol inválido")
	}
	return fe.err()
}

// CreateUser alta por administrador. La API es quien exige el rol admin.
func (uc *AuthUseCase) CreateUser(ctx context.Context, api ports.AuthAPI, req dto.CreateUserRequest) (*entity.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := ValidateCreateUser(req); err != nil {
		return nil, err
	}
	u, err := api.CreateUserByAdmin(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}
