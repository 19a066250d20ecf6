// Package gridsql is a concrete paged-remote data source: a
// datastrategy.FetchPageFunc backed by a gorm-managed sqlite database,
// demonstrating the Data Strategy's paged-remote contract against a real
// row store instead of an in-memory stub.
package gridsql

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/loomgrid/gridcore/pkg/models"
)

// DB wraps a gorm connection plus the column set gridsql maps rows
// against.
type DB struct {
	conn    *gorm.DB
	table   string
	columns []models.Column
}

// Open connects to a sqlite file (or ":memory:") via gorm, using
// glebarez/sqlite so the resulting binary needs no cgo toolchain.
func Open(dsn, table string, columns []models.Column) (*DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gridsql: open: %w", err)
	}
	return &DB{conn: conn, table: table, columns: columns}, nil
}

// Seed inserts rows into the configured table, creating it first if
// necessary via raw DDL built from the column list (gorm's AutoMigrate
// needs a Go struct; gridsql's columns are dynamic, so table creation and
// inserts go through conn.Table(...) and a map value instead).
func (d *DB) Seed(rows []models.Row) error {
	if err := d.ensureTable(); err != nil {
		return err
	}
	for _, row := range rows {
		if err := d.conn.Table(d.table).Create(map[string]any(row)).Error; err != nil {
			return fmt.Errorf("gridsql: seed insert: %w", err)
		}
	}
	return nil
}

func (d *DB) ensureTable() error {
	cols := make([]string, 0, len(d.columns)+1)
	cols = append(cols, "rowid INTEGER PRIMARY KEY")
	for _, c := range d.columns {
		cols = append(cols, fmt.Sprintf("%q TEXT", c.Key))
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", d.table, joinColumns(cols))
	return d.conn.Exec(ddl).Error
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// FetchPage returns a datastrategy.FetchPageFunc reading pageSize rows at
// a time from the table, applying q's sort and global filter text as a
// SQL ORDER BY / LIKE clause. Column-level set/range filters are not
// translated to SQL here; gridsql covers the paged-fetch and sort/filter-
// text contract only.
func (d *DB) FetchPage(pageSize int) func(pageIndex int, q models.Query) (models.PageResponse, error) {
	return func(pageIndex int, q models.Query) (models.PageResponse, error) {
		query := d.conn.Table(d.table)
		if q.FilterText != "" {
			clause, args := likeAcrossColumns(d.columns, q.FilterText)
			query = query.Where(clause, args...)
		}
		if q.Sort != nil {
			dir := "ASC"
			if q.Sort.Direction == models.Desc {
				dir = "DESC"
			}
			query = query.Order(fmt.Sprintf("%q %s", q.Sort.Key, dir))
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return models.PageResponse{}, fmt.Errorf("gridsql: count: %w", err)
		}

		var raw []map[string]any
		if err := query.Offset(pageIndex * pageSize).Limit(pageSize).Find(&raw).Error; err != nil {
			return models.PageResponse{}, fmt.Errorf("gridsql: fetch page: %w", err)
		}

		rows := make([]models.Row, len(raw))
		for i, r := range raw {
			rows[i] = models.Row(r)
		}
		return models.PageResponse{List: rows, TotalRows: int(total)}, nil
	}
}

func likeAcrossColumns(columns []models.Column, text string) (string, []any) {
	if len(columns) == 0 {
		return "1=1", nil
	}
	clause := ""
	args := make([]any, 0, len(columns))
	needle := "%" + text + "%"
	for i, c := range columns {
		if i > 0 {
			clause += " OR "
		}
		clause += fmt.Sprintf("%q LIKE ?", c.Key)
		args = append(args, needle)
	}
	return clause, args
}
