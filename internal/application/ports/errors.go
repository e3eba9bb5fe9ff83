package ports

import "errors"

// ErrSubscriptionGone indica que el servicio push rechazó la suscripción de forma definitiva.
var ErrSubscriptionGone = errors.New("suscripción push expirada")
