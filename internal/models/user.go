package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Roles known to the social network.
const (
	RolAdministrador = "Administrador"
	RolUsuario       = "Usuario red social"
)

type Usuario struct {
	Username       string    `json:"username" gorm:"primaryKey;size:50"`
	Nombre         string    `json:"nombre"`
	ContrasenaHash string    `json:"-" gorm:"column:contrasena_hash"` // Store hashed password, ignore for JSON serialization
	Rol            string    `json:"rol"`
	FechaCreacion  time.Time `json:"fecha_creacion" gorm:"column:fecha_creacion;autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }

type LoginRequest struct {
	Username        string `json:"username" validate:"required"`
	ContrasenaPlana string `json:"contrasenaPlana" validate:"required"`
}

type CreateUsuarioRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=50"`
	Nombre          string `json:"nombre" validate:"required,min=2,max=100"`
	ContrasenaPlana string `json:"contrasena_plana" validate:"required,min=8"`
	Rol             string `json:"rol,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}
