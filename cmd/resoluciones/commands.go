package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/resoluciones-facturador/internal/application/resolutions"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/internal/infrastructure/postgres"
	"github.com/jhoicas/resoluciones-facturador/internal/infrastructure/sqlfile"
	"github.com/jhoicas/resoluciones-facturador/internal/infrastructure/tabular"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var strict, summary bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Genera el script SQL de las nuevas resoluciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			rules, err := buildRules(cfg.Rules)
			if err != nil {
				return fmt.Errorf("reglas de traducción: %w", err)
			}
			reader := tabular.NewReader(cfg.Biller.InputDir, cfg.Biller.SupplyPath(), log)
			files, err := reader.Files()
			if err != nil {
				return err
			}

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				log.Error().Err(err).Msg("conexión a la base del facturador")
				return err
			}
			defer pool.Close()
			if err := postgres.NewChecker(pool).Check(ctx); err != nil {
				log.Error().Err(err).Msg("la base del facturador no está disponible")
				return err
			}

			catalog := postgres.NewCatalogRepository(postgres.NewReadOnlyRunner(pool), cfg.Biller.Table, cfg.Biller.CatalogTable)
			uc := resolutions.NewGenerateUseCase(
				reader,
				resolution.NewCoercer(rules),
				resolutions.NewReferenceResolver(catalog),
				resolutions.NewAssigner(catalog),
				resolutions.NewStatementEmitter(cfg.Biller.Table, cfg.Biller.Company),
				log,
				strict,
			)

			report, err := uc.Execute(ctx)
			if report != nil && (summary || len(report.Rejected) > 0) {
				printSummary(cmd.OutOrStdout(), report)
			}
			if err != nil {
				if errors.Is(err, resolutions.ErrRejectedRows) {
					log.Error().Err(err).Msg("modo estricto: no se genera el archivo")
				}
				return err
			}
			if report.Plan.Empty() {
				return nil
			}

			out := cfg.Biller.OutputPath()
			header := sqlfile.Header{RunID: report.RunID, GeneratedAt: report.GeneratedAt, Source: baseNames(files)}
			if err := sqlfile.Write(out, header, report.SQL); err != nil {
				return err
			}
			log.Info().
				Str("run_id", report.RunID).
				Str("output", out).
				Int("inserts", len(report.Plan.Inserts)).
				Msg("archivo SQL generado")
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "falla si alguna fila es rechazada")
	cmd.Flags().BoolVar(&summary, "summary", false, "imprime el resumen de resoluciones aceptadas y rechazadas")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Valida las planillas de entrada sin consultar la base",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			rules, err := buildRules(cfg.Rules)
			if err != nil {
				return fmt.Errorf("reglas de traducción: %w", err)
			}
			reader := tabular.NewReader(cfg.Biller.InputDir, cfg.Biller.SupplyPath(), log)
			uc := resolutions.NewGenerateUseCase(reader, resolution.NewCoercer(rules), nil, nil, nil, log, strict)

			report, err := uc.Validate(cmd.Context())
			if report != nil {
				printSummary(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "termina con error si alguna fila es rechazada")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Comprueba la disponibilidad de la base del facturador",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				log.Error().Err(err).Msg("conexión a la base del facturador")
				return err
			}
			defer pool.Close()
			if err := postgres.NewChecker(pool).Check(ctx); err != nil {
				log.Error().Err(err).Msg("la base del facturador no está disponible")
				return err
			}
			log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.DBName).Msg("base del facturador disponible")
			fmt.Fprintln(cmd.OutOrStdout(), "biller: ok")
			return nil
		},
	}
}

func baseNames(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, ", ")
}
