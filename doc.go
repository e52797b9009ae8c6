// Package stringql composes SQL statements from format-string templates and executes them.
/*

SQL Template Composer

stringql lets you write partial SQL with two kinds of placeholders:

- {name} placeholders are filled with identifiers (table names, column
  names, lists of columns) taken from a Params map. Identifiers are always
  double-quoted, so they can't be used to inject SQL.
- ? placeholders are value placeholders bound to query arguments.
  Use \? for a literal question mark.

	q, err := stringql.Parameterize("select {cols} from {table} where id = ?",
		stringql.Params{"cols": []string{"name", "surname"}, "table": "people"})
	// select "name", "surname" from "people" where id = ?

Multi-column INSERT statements can be derived from a Row:

	q, err := stringql.ParameterizeRow(
		"insert into {table} ({fields}) values ({placeholders})",
		stringql.Row{"num": 101, "data": "hello"},
		stringql.Params{"table": "test_table"})
	// insert into "test_table" ("data", "num") values (?, ?)

DoQuery composes and executes a statement in one call. The PostgreSQL
dialect replaces ? placeholders with numbered ones ($1, $2, etc).
*/
package stringql
