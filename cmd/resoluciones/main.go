// resoluciones genera el script SQL que da de alta las resoluciones de facturación de la DIAN
// en la base del facturador, a partir de las planillas del directorio de entrada.
//
// Uso:
//
//	resoluciones check               comprueba la conexión a la base
//	resoluciones validate            valida las planillas sin tocar la base
//	resoluciones generate [--strict] genera output/resolution.sql
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
