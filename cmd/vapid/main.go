// vapid genera un par de llaves VAPID para configurar Web Push.
//
// Uso: go run ./cmd/vapid >> .env
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/perfumeria-api/internal/infrastructure/push"
)

func main() {
	private, public, err := push.GenerateVAPIDKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar llaves VAPID: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", public, private)
}
