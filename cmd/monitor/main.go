// Command monitor sirve el dashboard de inventario en vivo y agrupa las tareas
// de operación: snapshot por consola, reporte PDF, siembra de PostgreSQL y hash
// de la contraseña del operador.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:           "monitor",
		Usage:          "Monitor de inventario en vivo",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			snapshotCommand(),
			reportCommand(),
			seedDBCommand(),
			hashPasswordCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
