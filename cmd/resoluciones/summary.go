package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jhoicas/resoluciones-facturador/internal/application/resolutions"
	"github.com/jhoicas/resoluciones-facturador/internal/domain"
)

// printSummary imprime las resoluciones aceptadas y, si las hay, las filas rechazadas.
func printSummary(w io.Writer, report *resolutions.Report) {
	if len(report.Accepted) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetTitle("Resoluciones aceptadas")
		tw.AppendHeader(table.Row{"ID", "Prefijo", "Tienda", "Tipo", "Resolución", "Vigencia", "Rango", "Reemplaza"})
		for _, rec := range report.Accepted {
			id, replaces := "", ""
			if rec.ID != nil {
				id = fmt.Sprint(*rec.ID)
			}
			if rec.PreviousResolutionID != nil {
				replaces = fmt.Sprint(*rec.PreviousResolutionID)
			}
			store := rec.StoreLabel
			if rec.Store != 0 {
				store = fmt.Sprint(rec.Store)
			}
			tw.AppendRow(table.Row{
				id, rec.Prefix, store, rec.DocType.Code(), rec.ResolutionNumber,
				rec.StartDate.Format("2006-01-02") + " a " + rec.EndDate.Format("2006-01-02"),
				fmt.Sprintf("%d-%d", rec.StartConsecutive, rec.EndConsecutive),
				replaces,
			})
		}
		tw.Render()
	}

	if len(report.Rejected) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetTitle("Filas rechazadas")
		tw.AppendHeader(table.Row{"Archivo", "Línea", "Campo", "Error"})
		for _, rej := range report.Rejected {
			field := ""
			var fe *domain.FieldError
			if errors.As(rej.Err, &fe) {
				field = fe.Field
			}
			tw.AppendRow(table.Row{rej.Source, rej.Line, field, rej.Err.Error()})
		}
		tw.Render()
	}

	fmt.Fprintf(w, "filas: %d  aceptadas: %d  rechazadas: %d\n", report.Rows, len(report.Accepted), len(report.Rejected))
	if report.Plan != nil && !report.Plan.Empty() {
		fmt.Fprintf(w, "cierres: %d  devoluciones: %d  inserciones: %d\n",
			len(report.Plan.CloseOuts), len(report.Plan.Rewrites), len(report.Plan.Inserts))
	}
}
