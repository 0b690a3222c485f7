package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards so a term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

func prefixPattern(term string) string {
	return escapeLike(term) + "%"
}

// exists runs a "SELECT 1 ... LIMIT 1" style probe and reports whether a row matched.
func exists(ctx context.Context, db sqlx.QueryerContext, label, query string, args ...interface{}) (bool, error) {
	var found int
	if err := sqlx.GetContext(ctx, db, &found, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s: %w", label, err)
	}
	return true, nil
}

// existsExcluding appends an "id <> $n" clause when excludeID is set.
func existsExcluding(ctx context.Context, db sqlx.QueryerContext, label, query, value, excludeID string) (bool, error) {
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	return exists(ctx, db, label, query, args...)
}

const personColumns = "id, first_name, mid_name, last_name, gender, date_of_birth, national_id"

// searchPeople runs the shared prefix search over a profile table.
func searchPeople(ctx context.Context, db sqlx.QueryerContext, table, term string, limit int) ([]models.PersonSummary, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
        WHERE national_id LIKE $1 ESCAPE '\' OR to_char(date_of_birth, 'YYYY-MM-DD') LIKE $1 ESCAPE '\'
        ORDER BY last_name, first_name, id LIMIT %d`, personColumns, table, limit)
	rows := []models.PersonSummary{}
	if err := sqlx.SelectContext(ctx, db, &rows, query, prefixPattern(term)); err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	return rows, nil
}
