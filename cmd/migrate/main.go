// migrate aplica o revierte las migraciones SQL embebidas.
//
// Uso: go run ./cmd/migrate [up|down|steps N|version|force N]
// Sin argumentos equivale a "up".
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/perfumeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/perfumeria-api/pkg/config"
	"github.com/jhoicas/perfumeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer mg.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps", "force":
		if len(os.Args) < 3 {
			log.Fatal().Str("cmd", cmd).Msg("falta el número")
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("número inválido")
		}
		if cmd == "steps" {
			err = mg.Steps(n)
		} else {
			err = mg.Force(n)
		}
	case "version":
		v, dirty, verr := mg.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|steps N|version|force N)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración")
	}
	log.Info().Str("cmd", cmd).Msg("migración completada")
}
