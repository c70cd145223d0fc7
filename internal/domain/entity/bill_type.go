package entity

// BillType es la entrada del catálogo factura.tipos_fact que relaciona un prefijo con su tienda.
type BillType struct {
	ID     int64  // c_tipo_fac
	Store  int64  // n_concepto_fact
	Prefix string // c_abrev
}

// ReturnedResolution es la resolución vigente de devoluciones (origen 9) de una tienda.
type ReturnedResolution struct {
	ID     int64  // c_resolucion
	Prefix string // c_abrev del tipo de factura asociado
}
