package entity

import (
	"encoding/json"
	"time"
)

// Tipos de notificación del feed de administradores.
const (
	NotificationShipmentCreated = "shipment_created"
	NotificationLowStock        = "low_stock"
	NotificationOrderCreated    = "order_created"
)

// Notification es una entrada del feed de administradores.
type Notification struct {
	ID        string
	Type      string
	Title     string
	Message   string
	Data      json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}
