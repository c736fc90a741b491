package models

import "time"

// TimelineMessage is a Mensaje as it appears inside a timeline entry;
// the author is implied by the entry's Siguiendo and is dropped.
type TimelineMessage struct {
	ID            string    `json:"id"`
	Contenido     string    `json:"contenido"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// TimelineEntry groups the messages of one followed user. Entries are
// composed per request and never persisted.
type TimelineEntry struct {
	Siguiendo string            `json:"siguiendo"`
	Mensajes  []TimelineMessage `json:"mensajes"`
}
