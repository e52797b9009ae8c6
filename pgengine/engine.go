// Package pgengine connects stringql to PostgreSQL through pgx.
package pgengine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gsimeone/stringql"
	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// PingTimeout bounds the connectivity check made by Connect.
const PingTimeout = 10 * time.Second

// Engine opens PostgreSQL connections and executes templates against them.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// New creates an Engine. The config is validated but no connection is made.
func New(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg: cfg,
		log: logger.With().Str("component", "pgengine").Logger(),
	}, nil
}

/*
Connect opens a database handle backed by pgx connections.

Several cursors may be open on the handle at once.

If schema is empty, Config.Schema is used. A non-empty schema is created
if it doesn't exist and is set as search_path of every connection, so
unqualified names resolve to it. Otherwise the server default (usually
public) applies.
*/
func (e *Engine) Connect(ctx context.Context, schema string) (*sql.DB, error) {
	if schema == "" {
		schema = e.cfg.Schema
	}

	connConfig, err := pgx.ParseConfig(e.cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if schema != "" {
		quoted, err := stringql.QuoteIdent(schema)
		if err != nil {
			return nil, err
		}
		connConfig.RuntimeParams["search_path"] = quoted
	}
	if e.cfg.LogLevel != "" && e.cfg.LogLevel != "none" {
		level, err := tracelog.LogLevelFromString(e.cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(e.log),
			LogLevel: level,
		}
	}

	db := stdlib.OpenDB(*connConfig)

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if schema != "" {
		_, err = e.DoQuery(ctx, db, stringql.ModeWrite, "create schema if not exists {schema}", nil,
			stringql.Params{"schema": schema})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema %q: %w", schema, err)
		}
	}

	e.log.Info().Str("schema", schema).Msg("connected to the database")
	return db, nil
}

/*
DoQuery composes a template with the PostgreSQL dialect and executes it.

See stringql.DoQuery for the meaning of mode, data and params. Server
errors are returned as *DatabaseError.
*/
func (e *Engine) DoQuery(ctx context.Context, db stringql.Executor, mode stringql.Mode, tmpl string, data interface{}, params stringql.Params, dropKeys ...string) (*stringql.Cursor, error) {
	q, err := stringql.PostgreSQL.Compose(mode, tmpl, data, params, dropKeys...)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	query := q.SQL()
	e.log.Debug().
		Str("mode", string(mode)).
		Str("sql", query).
		Int("args", len(q.Args())).
		Msg("executing query")

	cur, err := stringql.Run(ctx, db, mode, q)
	if err != nil {
		err = WrapError(err, query)
		e.log.Debug().Err(err).Msg("query failed")
		return nil, err
	}
	return cur, nil
}
