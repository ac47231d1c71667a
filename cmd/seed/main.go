// seed carga los datos de demostración (admin, Flagship Store con su manager, un supplier
// y tres productos) en el backend configurado por STORAGE_BACKEND. Es idempotente.
//
// Uso: go run ./cmd/seed [-catalog catalogo.csv]
// El CSV (sku;name;category;size;color;price;cost_price, UTF-8 o ISO-8859-1) se importa
// en la Flagship Store.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/stylelane-api/internal/application/seed"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/storage"
	"github.com/jhoicas/stylelane-api/pkg/config"
	"github.com/jhoicas/stylelane-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV de catálogo a importar en la Flagship Store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	if cfg.Storage.Backend == config.BackendMemory {
		log.Warn().Msg("STORAGE_BACKEND=memory: el seed no persiste; la API en memoria se siembra sola al arrancar")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	b, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend")
	}
	defer b.Close()

	seeder := seed.NewSeeder(b.Stores, b.Users, b.Products, b.Inventory)
	res, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed de demostración")
	}

	if *catalogPath == "" {
		return
	}
	f, err := os.Open(*catalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *catalogPath).Msg("abrir catálogo")
	}
	defer f.Close()

	out, err := seeder.ImportCatalog(ctx, f, res.StoreID)
	if err != nil {
		log.Fatal().Err(err).Str("file", *catalogPath).Msg("importar catálogo")
	}
	log.Info().
		Str("file", *catalogPath).
		Int("created", out.Created).
		Int("updated", out.Updated).
		Msg("catálogo importado")
}
