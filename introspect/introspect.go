package introspect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of a pgx pool or connection introspection needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type ExistingColumn struct {
	ColumnName   string
	DataType     string
	IsNullable   bool
	IsPrimaryKey bool
}

type ExistingForeignKey struct {
	ColumnName       string
	ReferencesTable  string
	ReferencesColumn string
}

// FactTable is a database table described well enough to scaffold a cube.
type FactTable struct {
	Schema      string
	Name        string
	Columns     []ExistingColumn
	ForeignKeys []ExistingForeignKey
}

// IntrospectTable reads the columns and foreign keys of one table.
func IntrospectTable(ctx context.Context, db Querier, schemaName, tableName string) (*FactTable, error) {
	columns, err := getColumns(ctx, db, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s.%s: %w", schemaName, tableName, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", schemaName, tableName)
	}

	foreignKeys, err := getForeignKeys(ctx, db, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("getting foreign keys for table %s.%s: %w", schemaName, tableName, err)
	}

	return &FactTable{
		Schema:      schemaName,
		Name:        tableName,
		Columns:     columns,
		ForeignKeys: foreignKeys,
	}, nil
}

func getColumns(ctx context.Context, db Querier, schemaName, tableName string) ([]ExistingColumn, error) {
	columnsQuery := `
	SELECT
		c.column_name,
		c.data_type,
		(c.is_nullable = 'YES') AS is_nullable,
		EXISTS (
			SELECT 1
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name
				AND kcu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = c.table_schema
				AND tc.table_name = c.table_name
				AND kcu.column_name = c.column_name
		) AS is_primary
	FROM information_schema.columns c
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position;
	`

	rows, err := db.Query(ctx, columnsQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []ExistingColumn
	for rows.Next() {
		var col ExistingColumn
		if err := rows.Scan(&col.ColumnName, &col.DataType, &col.IsNullable, &col.IsPrimaryKey); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, col)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating column rows: %w", rows.Err())
	}

	return columns, nil
}

func getForeignKeys(ctx context.Context, db Querier, schemaName, tableName string) ([]ExistingForeignKey, error) {
	foreignKeysQuery := `
	SELECT
		kcu.column_name,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2
	ORDER BY kcu.ordinal_position;
	`

	rows, err := db.Query(ctx, foreignKeysQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	var foreignKeys []ExistingForeignKey
	for rows.Next() {
		var fk ExistingForeignKey
		if err := rows.Scan(&fk.ColumnName, &fk.ReferencesTable, &fk.ReferencesColumn); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}
		foreignKeys = append(foreignKeys, fk)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating foreign key rows: %w", rows.Err())
	}

	return foreignKeys, nil
}
