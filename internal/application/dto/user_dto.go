package dto

import "github.com/jhoicas/Inventario-web/internal/domain/entity"

// LoginRequest cuerpo de POST /users/login y del formulario de login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse respuesta de la API: token + perfil.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// RegisterRequest cuerpo de POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm formulario de registro (incluye la confirmación, que no viaja a la API).
type RegisterForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// CreateUserRequest alta de usuario por un administrador con rol explícito.
type CreateUserRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}
