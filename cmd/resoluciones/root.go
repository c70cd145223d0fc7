package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/config"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
	"github.com/jhoicas/resoluciones-facturador/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "resoluciones",
		Short: "Generador de resoluciones de facturación",
		Long: `Lee las planillas de resoluciones (CSV o XLSX) del directorio de entrada, valida cada fila,
resuelve la tienda y el tipo de factura contra la base del facturador y escribe un script SQL
con los cierres de vigencia, las reescrituras de devoluciones y el INSERT de las nuevas resoluciones.
El script no se ejecuta: queda en el directorio de salida para revisión.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "archivo config.toml (por defecto ./config.toml o ./config/config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "nivel de log en consola (trace, debug, info, warn, error)")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	return root
}

// bootstrap carga la configuración, prepara los directorios y crea el logger.
func bootstrap(opts *rootOptions) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:       cfg.App.Env,
		Level:     cfg.Log.Level,
		FileLevel: cfg.Log.FileLevel,
		Dir:       cfg.Log.Dir,
	})
	return cfg, log, nil
}

// buildRules arma las reglas de traducción; las secciones vacías usan las de la plantilla.
func buildRules(rc config.RulesConfig) (resolution.Rules, error) {
	headers := rc.Headers
	if len(headers) == 0 {
		headers = resolution.DefaultHeaders
	}
	docTypes := rc.DocumentTypes
	if len(docTypes) == 0 {
		docTypes = make(map[string]int, len(dian.DefaultDocTypeNames))
		for name, dt := range dian.DefaultDocTypeNames {
			docTypes[name] = int(dt)
		}
	}
	return resolution.NewRules(headers, docTypes, rc.Stores)
}
