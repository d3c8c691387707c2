// file: internals/features/users/dto/auth_dto.go
package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Rol         string `json:"rol"`
	Nombre      string `json:"nombre"`
}
