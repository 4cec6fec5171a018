package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-monitor/internal/application/dto"
	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/pkg/jwt"
)

// ErrLoginDisabled no hay hash de contraseña configurado para el operador.
var ErrLoginDisabled = errors.New("login de administración deshabilitado")

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials operador único del monitor (ADMIN_USER / ADMIN_PASSWORD_HASH).
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// AuthUseCase login del operador que administra el refresco.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y emite un JWT con rol admin.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.creds.PasswordHash == "" || uc.jwtCfg.Secret == "" {
		return nil, ErrLoginDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.creds.Username)) == 1
	// Se compara el hash aunque el usuario no coincida para no filtrar cuál falló por tiempo.
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.creds.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.creds.Username, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// HashPassword genera el hash bcrypt a guardar en ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
