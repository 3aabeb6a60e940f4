// internal/models/notification.go
package models

import "time"

// Notification channels.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

// Notificacion is a queued or delivered user notification.
type Notificacion struct {
	ID        string    `json:"id" db:"id"`
	UsuarioID string    `json:"usuario_id" db:"usuario_id"`
	Canal     string    `json:"canal" db:"canal"`
	Titulo    string    `json:"titulo" db:"titulo"`
	Mensaje   string    `json:"mensaje" db:"mensaje"`
	Enviada   bool      `json:"enviada" db:"enviada"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
