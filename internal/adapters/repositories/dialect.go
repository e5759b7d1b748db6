package repositories

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects placeholder and upsert syntax.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case DialectSQLite:
		return DialectSQLite, nil
	case DialectPostgres, "pgx", "postgresql":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unknown database dialect %q", s)
}

// placeholders returns "?, ?" or "$1, $2" for n bind parameters.
func (d Dialect) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		if d == DialectPostgres {
			ph[i] = "$" + strconv.Itoa(i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}

// upsert builds an insert that replaces the row on primary key conflict.
func (d Dialect) upsert(table string, key string, cols []string) string {
	all := append([]string{key}, cols...)
	if d == DialectPostgres {
		set := make([]string, len(cols))
		for i, c := range cols {
			set[i] = c + " = EXCLUDED." + c
		}
		return fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s;",
			table, strings.Join(all, ", "), d.placeholders(len(all)), key, strings.Join(set, ", "),
		)
	}
	return fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s);",
		table, strings.Join(all, ", "), d.placeholders(len(all)),
	)
}
