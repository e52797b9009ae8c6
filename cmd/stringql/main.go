package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gsimeone/stringql"
	"github.com/gsimeone/stringql/pgengine"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var verbose bool
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCommand := &cobra.Command{
		Use:          "stringql",
		Short:        "Compose SQL from templates and run it against PostgreSQL",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = logger.Level(level)
		},
	}
	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log composed statements")

	var (
		idents  []string
		dialect string
	)
	renderCommand := &cobra.Command{
		Use:   "render <template>",
		Short: "Print the statement composed from a template",
		Long:  "Print the statement composed from a template. Identifier params are passed as --ident name=value; comma-separated values become identifier lists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseIdents(idents)
			if err != nil {
				return err
			}
			d := stringql.NoDialect
			switch dialect {
			case "", "none":
			case "pg", "postgres", "postgresql":
				d = stringql.PostgreSQL
			default:
				return fmt.Errorf("unknown dialect %q", dialect)
			}
			q, err := d.Parameterize(args[0], params)
			if err != nil {
				return err
			}
			defer q.Close()
			fmt.Fprintln(cmd.OutOrStdout(), q.SQL())
			return nil
		},
	}
	renderCommand.Flags().StringArrayVarP(&idents, "ident", "i", nil, "Identifier param as name=value")
	renderCommand.Flags().StringVarP(&dialect, "dialect", "d", "", "Placeholder dialect: none or pg")
	rootCommand.AddCommand(renderCommand)

	var (
		execIdents []string
		values     []string
		mode       string
		schema     string
	)
	execCommand := &cobra.Command{
		Use:   "exec <template>",
		Short: "Compose a statement and execute it",
		Long:  "Compose a statement and execute it against the database configured with STRINGQL_* environment variables.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := stringql.ParseMode(mode)
			if err != nil {
				return err
			}
			params, err := parseIdents(execIdents)
			if err != nil {
				return err
			}
			cfg, err := pgengine.LoadConfig()
			if err != nil {
				return err
			}
			engine, err := pgengine.New(*cfg, logger)
			if err != nil {
				return err
			}

			ctx := context.Background()
			db, err := engine.Connect(ctx, schema)
			if err != nil {
				return err
			}
			defer db.Close()

			data := make([]interface{}, len(values))
			for i, v := range values {
				data[i] = v
			}
			cur, err := engine.DoQuery(ctx, db, m, args[0], data, params)
			if err != nil {
				return err
			}
			defer cur.Close()
			return printResult(cmd, m, cur)
		},
	}
	execCommand.Flags().StringArrayVarP(&execIdents, "ident", "i", nil, "Identifier param as name=value")
	execCommand.Flags().StringArrayVarP(&values, "arg", "a", nil, "Value bound to the next ? placeholder")
	execCommand.Flags().StringVarP(&mode, "mode", "m", string(stringql.ModeRead), "Execution mode: r, w or wr")
	execCommand.Flags().StringVarP(&schema, "schema", "s", "", "Schema to create and use as search_path")
	rootCommand.AddCommand(execCommand)

	return rootCommand
}

// parseIdents turns name=value pairs into params.
// A value with commas becomes an identifier list.
func parseIdents(pairs []string) (stringql.Params, error) {
	params := make(stringql.Params, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid ident %q, expected name=value", pair)
		}
		if strings.Contains(value, ",") {
			params[name] = stringql.Idents(strings.Split(value, ","))
		} else {
			params[name] = stringql.Ident(value)
		}
	}
	return params, nil
}

// printResult prints the affected row count of a write, or the rows otherwise.
func printResult(cmd *cobra.Command, m stringql.Mode, cur *stringql.Cursor) error {
	if m == stringql.ModeWrite {
		n, err := cur.RowsAffected()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows affected\n", n)
		return nil
	}
	return printRows(cmd, cur)
}

func printRows(cmd *cobra.Command, cur *stringql.Cursor) error {
	cols, err := cur.Columns()
	if err != nil {
		return err
	}
	rows, err := cur.FetchAll()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
