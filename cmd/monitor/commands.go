package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/inventario-monitor/internal/application/auth"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/dataset"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-monitor/pkg/config"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "supplier",
			Usage: "Proveedor a mostrar o \"All\"",
			Value: entity.AllSuppliers,
		},
		&cli.IntFlag{
			Name:  "min-quantity",
			Usage: "Cantidad mínima en stock (inclusive)",
			Value: 0,
		},
		&cli.IntFlag{
			Name:  "refreshes",
			Usage: "Refrescos simulados a aplicar antes de calcular (0 = baseline)",
			Value: 0,
		},
	}
}

func criteriaFrom(c *cli.Context) entity.FilterCriteria {
	return entity.FilterCriteria{Supplier: c.String("supplier"), MinQuantity: c.Int("min-quantity")}
}

// preparedPipeline arma el pipeline y aplica los refrescos pedidos por flag.
func preparedPipeline(c *cli.Context) (*pipeline, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := buildPipeline(c.Context, cfg, log)
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Int("refreshes"); i++ {
		if _, err := p.refresher.RefreshNow(c.Context); err != nil {
			p.close()
			return nil, fmt.Errorf("refresco %d: %w", i+1, err)
		}
	}
	return p, nil
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Imprime en JSON las cajas de valor del dashboard filtrado",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			p, err := preparedPipeline(c)
			if err != nil {
				return err
			}
			defer p.close()

			summary, err := p.dashboard.Summary(c.Context, criteriaFrom(c))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Genera el reporte PDF del dashboard filtrado",
		Flags: append(filterFlags(), &cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Archivo de salida",
			Value:   "inventario.pdf",
		}),
		Action: func(c *cli.Context) error {
			p, err := preparedPipeline(c)
			if err != nil {
				return err
			}
			defer p.close()

			pdf, err := p.dashboard.Report(c.Context, criteriaFrom(c))
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), pdf, 0o644); err != nil {
				return fmt.Errorf("escribir reporte: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "reporte escrito en %s (%d bytes)\n", c.String("out"), len(pdf))
			return nil
		},
	}
}

func seedDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-db",
		Usage: "Carga un dataset de archivo en la tabla inventory_items de PostgreSQL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from",
				Usage:   "Dataset de origen (.csv, .xlsx o s3://bucket/clave); por defecto DATASET_PATH",
				EnvVars: []string{"SEED_DATASET_PATH"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			dsCfg := cfg.Dataset
			dsCfg.Source = config.DatasetSourceFile
			if from := c.String("from"); from != "" {
				dsCfg.Path = from
			}
			src, err := dataset.NewSource(dsCfg, cfg.Storage)
			if err != nil {
				return err
			}
			records, err := src.Load(c.Context)
			if err != nil {
				return err
			}

			pool, err := postgres.NewPool(c.Context, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			repo := postgres.NewInventoryItemRepository(pool, postgres.NewTxRunner(pool))
			if err := repo.EnsureSchema(c.Context); err != nil {
				return err
			}
			if err := repo.ReplaceAll(c.Context, records); err != nil {
				return err
			}
			log.Info().Str("from", src.Name()).Int("records", len(records)).Msg("inventory_items sembrada")
			return nil
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Imprime el hash bcrypt para ADMIN_PASSWORD_HASH",
		ArgsUsage: "<password>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("uso: monitor hash-password <password>")
			}
			hash, err := auth.HashPassword(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
