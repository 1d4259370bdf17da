package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/pkg/railnet/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// DB is a read-only view of the station distance table.
type DB struct {
	conn   *sql.DB
	logger logger.Logger
}

func New(ctx context.Context, connStr string, logger logger.Logger) (*DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("Database connection established")

	return &DB{
		conn:   conn,
		logger: logger,
	}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// LoadRouteDistances reads every (source, destination, distance) row of table.
func (db *DB) LoadRouteDistances(ctx context.Context, table string) ([]models.RouteDistance, error) {
	quoted, err := QuoteTableName(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT source, destination, distance FROM %s`, quoted)
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying route distances: %w", err)
	}
	defer rows.Close()

	var result []models.RouteDistance
	for rows.Next() {
		var (
			row      models.RouteDistance
			distance sql.NullFloat64
		)
		if err := rows.Scan(&row.Source, &row.Destination, &distance); err != nil {
			return nil, fmt.Errorf("scanning route distance: %w", err)
		}
		if !distance.Valid {
			return nil, fmt.Errorf("route %s-%s in %s has no distance", row.Source, row.Destination, table)
		}
		row.Source = strings.TrimSpace(row.Source)
		row.Destination = strings.TrimSpace(row.Destination)
		row.Distance = distance.Float64
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating route distances: %w", err)
	}

	db.logger.Info("Route distances loaded from database", "table", table, "rows", len(result))
	return result, nil
}

// QuoteTableName validates a table or schema.table name and quotes each part.
func QuoteTableName(table string) (string, error) {
	if !tableNamePattern.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}
