package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Mensaje struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UsernameAutor string             `json:"username_autor" bson:"username_autor"`
	Contenido     string             `json:"contenido" bson:"contenido"`
	FechaCreacion time.Time          `json:"fecha_creacion" bson:"fecha_creacion"`
}

type CreateMensajeRequest struct {
	Contenido string `json:"contenido" validate:"required,max=1000"`
}
