package entity

import "time"

// PushSubscription es la suscripción Web Push de un navegador.
type PushSubscription struct {
	ID        string
	UserID    string
	Endpoint  string // único
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
