package storage

import (
	"context"
	"database/sql"
	"fmt"

	"qna/internal/domain/qna"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Container holds the repositories of one storage backend and owns its handle.
type Container struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB

	QnA qna.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool: db,
		QnA:  qna.NewRepository(db),
	}
}

func NewSQLiteContainer(db *sql.DB) *Container {
	return &Container{
		sqlDB: db,
		QnA:   qna.NewSQLiteRepository(db),
	}
}

// Ping checks that the backing database answers.
func (c *Container) Ping(ctx context.Context) error {
	switch {
	case c.pool != nil:
		return c.pool.Ping(ctx)
	case c.sqlDB != nil:
		return c.sqlDB.PingContext(ctx)
	default:
		return fmt.Errorf("storage container has no database handle")
	}
}

// Stats reports connection pool statistics for expvar.
func (c *Container) Stats() any {
	switch {
	case c.pool != nil:
		s := c.pool.Stat()
		return map[string]any{
			"driver":              "postgres",
			"acquired_conns":      s.AcquiredConns(),
			"idle_conns":          s.IdleConns(),
			"total_conns":         s.TotalConns(),
			"max_conns":           s.MaxConns(),
			"acquire_count":       s.AcquireCount(),
			"empty_acquire_count": s.EmptyAcquireCount(),
		}
	case c.sqlDB != nil:
		return map[string]any{
			"driver": "sqlite",
			"stats":  c.sqlDB.Stats(),
		}
	default:
		return nil
	}
}

func (c *Container) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	if c.sqlDB != nil {
		return c.sqlDB.Close()
	}
	return nil
}
