package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads the `word` column of table, in rowid order, from the
// SQLite database at path.
func LoadSQLite(ctx context.Context, name, path, table string) (*Lexicon, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT word FROM "+table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	defer rows.Close()

	wc := newWordCleaner()
	words := []string{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if w, ok := wc.clean(raw); ok {
			words = append(words, w)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return finish(name, words, wc), nil
}
