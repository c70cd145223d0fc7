package resolution

import (
	"fmt"
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
)

const (
	// TimestampLayout es el formato de fecha-hora usado en las sentencias generadas.
	TimestampLayout = "2006-01-02 15:04:05"
	// SupersessionStep es lo que se resta al inicio de la nueva resolución para cerrar la anterior.
	SupersessionStep = time.Second

	descriptionDateLayout = "02/01/2006"
	daysPerMonth          = 30
	secondsPerDay         = 24 * 60 * 60
)

// MonthsValidity aproxima la vigencia en meses como días completos / 30. No es un conteo calendario.
// Se calcula sobre segundos Unix: time.Duration se satura en vigencias de más de ~292 años.
func MonthsValidity(start, end time.Time) int {
	days := floorDiv(end.Unix()-start.Unix(), secondsPerDay)
	return int(floorDiv(days, daysPerMonth))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// LegalDescription arma el texto d_resolucion que se imprime en las facturas.
func LegalDescription(number int64, start, end time.Time, prefix string, startConsecutive, endConsecutive int64) string {
	return fmt.Sprintf("Resolución de Factura Electrónica Nro. %d  Fecha %s  Prefijo %s  Rango %d al %d Vigencia %d meses.",
		number, start.Format(descriptionDateLayout), prefix, startConsecutive, endConsecutive, MonthsValidity(start, end))
}

// Description es la descripción legal de una resolución ya construida.
func Description(r *entity.BillingResolution) string {
	return LegalDescription(r.ResolutionNumber, r.StartDate, r.EndDate, r.Prefix, r.StartConsecutive, r.EndConsecutive)
}
