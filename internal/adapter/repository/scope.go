package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier é o subconjunto comum de *pgxpool.Pool e pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scopedByID monta a busca de uma entidade por ID restrita ao tenant.
// Toda leitura de entidade passa por aqui: $1 é sempre o tenant e $2 o ID.
func scopedByID(table, columns string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE tenant_id = $1 AND id = $2", columns, table)
}

// scopedByIDs é a variante de scopedByID para vários IDs ($2 é um array)
func scopedByIDs(table, columns string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE tenant_id = $1 AND id = ANY($2) ORDER BY id", columns, table)
}

// findScoped executa scopedByID e converte ausência em NotFound
func findScoped(ctx context.Context, q querier, entity, table, columns, tenantID, id string, dest ...any) error {
	err := q.QueryRow(ctx, scopedByID(table, columns), tenantID, id).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return failure.NotFound(entity, id)
		}
		return fmt.Errorf("erro ao buscar %s: %w", table, err)
	}
	return nil
}

// isUniqueViolation verifica se err é violação de índice único
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
