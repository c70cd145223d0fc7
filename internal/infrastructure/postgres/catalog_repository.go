package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/repository"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

var _ repository.CatalogReader = (*CatalogRepository)(nil)

// CatalogRepository implementa CatalogReader sobre las tablas del facturador.
// Solo lee: cada consulta corre en su propia transacción de solo lectura.
type CatalogRepository struct {
	runner       *ReadOnlyRunner
	table        string
	catalogTable string
}

// NewCatalogRepository construye el repositorio. table es la tabla de resoluciones y
// catalogTable la de tipos de factura.
func NewCatalogRepository(runner *ReadOnlyRunner, table, catalogTable string) *CatalogRepository {
	return &CatalogRepository{runner: runner, table: table, catalogTable: catalogTable}
}

// FindBillTypeByPrefix devuelve nil, nil si el prefijo no está en el catálogo.
func (r *CatalogRepository) FindBillTypeByPrefix(ctx context.Context, prefix string) (*entity.BillType, error) {
	query, args := billTypeByPrefixQuery(r.catalogTable, prefix)
	var bt *entity.BillType
	err := r.runner.Run(ctx, func(tx pgx.Tx) error {
		var id, store int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&id, &store); err != nil {
			return err
		}
		bt = &entity.BillType{ID: id, Store: store, Prefix: prefix}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError("get bill type by prefix", r.catalogTable, err)
	}
	return bt, nil
}

// FindActiveResolutionID devuelve la resolución vigente del tipo de factura, o nil si no hay.
func (r *CatalogRepository) FindActiveResolutionID(ctx context.Context, billTypeID int64) (*int64, error) {
	query, args := activeResolutionQuery(r.table, billTypeID)
	var id *int64
	err := r.runner.Run(ctx, func(tx pgx.Tx) error {
		var v int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&v); err != nil {
			return err
		}
		id = &v
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError("get active resolution", r.table, err)
	}
	return id, nil
}

// MaxResolutionID devuelve el mayor identificador de la tabla; 0 si está vacía.
func (r *CatalogRepository) MaxResolutionID(ctx context.Context) (int64, error) {
	query, args := maxResolutionIDQuery(r.table)
	var maxID int64
	err := r.runner.Run(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&maxID)
	})
	if err != nil {
		return 0, wrapQueryError("get max resolution id", r.table, err)
	}
	return maxID, nil
}

// FindActiveReturnedResolution devuelve la resolución de devoluciones vigente de la tienda
// (la de mayor identificador), o nil si no hay.
func (r *CatalogRepository) FindActiveReturnedResolution(ctx context.Context, store int64) (*entity.ReturnedResolution, error) {
	query, args := returnedResolutionQuery(r.table, r.catalogTable, store)
	var res *entity.ReturnedResolution
	err := r.runner.Run(ctx, func(tx pgx.Tx) error {
		var v entity.ReturnedResolution
		if err := tx.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Prefix); err != nil {
			return err
		}
		res = &v
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError("get returned resolution by store", r.table, err)
	}
	return res, nil
}

// ── queries ───────────────────────────────────────────────────────────────────

func billTypeByPrefixQuery(catalogTable, prefix string) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("tf.c_tipo_fac", "tf.n_concepto_fact::INT8")
	sb.From(sb.As(catalogTable, "tf"))
	sb.Where(sb.Equal("tf.c_abrev", prefix))
	sb.Limit(1)
	return sb.Build()
}

// activeResolutionQuery busca por c_prefijo, que en la tabla de resoluciones guarda el tipo de factura.
func activeResolutionQuery(table string, billTypeID int64) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("r.c_resolucion")
	sb.From(sb.As(table, "r"))
	sb.Where(
		sb.Equal("r.c_prefijo", billTypeID),
		"r.f_vigencia_hasta > NOW()",
	)
	sb.OrderBy("r.c_resolucion").Desc()
	sb.Limit(1)
	return sb.Build()
}

func maxResolutionIDQuery(table string) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COALESCE(MAX(r.c_resolucion), 0)")
	sb.From(sb.As(table, "r"))
	return sb.Build()
}

// returnedResolutionQuery compara la tienda como texto: n_concepto_fact es una columna de texto.
func returnedResolutionQuery(table, catalogTable string, store int64) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("r.c_resolucion", "tf.c_abrev")
	sb.From(sb.As(table, "r"))
	sb.Join(sb.As(catalogTable, "tf"), "r.c_prefijo = tf.c_tipo_fac")
	sb.Where(
		sb.Equal("tf.n_concepto_fact", strconv.FormatInt(store, 10)),
		sb.Equal("r.c_origen", dian.DocTypeReturn.Code()),
		"r.f_vigencia_hasta > NOW()",
	)
	sb.OrderBy("r.c_resolucion").Desc()
	sb.Limit(1)
	return sb.Build()
}
