package models

import "time"

// Follow represents a directed follow edge: the seguidor follows the principal.
// The (principal, seguidor) pair is unique; self-edges are rejected at the handler.
type Follow struct {
	ID                       uint      `json:"-" gorm:"primaryKey"`
	UsuarioPrincipalUsername string    `json:"usuario_principal_username" gorm:"column:usuario_principal_username;size:50;uniqueIndex:idx_principal_seguidor"`
	UsuarioSeguidorUsername  string    `json:"usuario_seguidor_username" gorm:"column:usuario_seguidor_username;size:50;uniqueIndex:idx_principal_seguidor;index"`
	FechaCreacion            time.Time `json:"fecha_creacion" gorm:"column:fecha_creacion;autoCreateTime"`
}

func (Follow) TableName() string { return "follows" }

type CreateFollowRequest struct {
	UsuarioSeguidorUsername string `json:"usuarioSeguidorUsername" validate:"required"`
}
