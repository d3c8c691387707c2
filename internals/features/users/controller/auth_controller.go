// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/santymrk2/school-system-sub001/internals/configs"
	"github.com/santymrk2/school-system-sub001/internals/features/users/dto"
	"github.com/santymrk2/school-system-sub001/internals/features/users/model"
	helper "github.com/santymrk2/school-system-sub001/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	if v == nil {
		v = validator.New()
	}
	return &AuthController{DB: db, Validator: v}
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var p dto.LoginRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))

	var usuario model.UsuarioModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("usuario_email = ? AND usuario_activo = TRUE AND usuario_deleted_at IS NULL", email).
		First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Mismo mensaje que password incorrecto: no se filtra si el mail existe.
			return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		log.Printf("[AUTH] error buscando usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	if bcrypt.CompareHashAndPassword([]byte(usuario.UsuarioPassword), []byte(p.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	claims := jwt.MapClaims{
		"user_id": usuario.UsuarioID.String(),
		"role":    usuario.UsuarioRol,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("[AUTH] error firmando token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "Ingreso correcto", dto.LoginResponse{
		AccessToken: signed,
		Rol:         usuario.UsuarioRol,
		Nombre:      usuario.UsuarioNombre,
	})
}
