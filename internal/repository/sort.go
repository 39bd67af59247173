package repository

import "strings"

// orderClause translates an API-level sort expression ("-createdAt") into a
// SQL ORDER BY clause using a per-store column whitelist. Unknown fields fall
// back to the store default, so the expression can never inject SQL.
func orderClause(sort string, allowed map[string]string, fallback string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return fallback
	}

	desc := false
	if strings.HasPrefix(sort, "-") {
		desc = true
		sort = sort[1:]
	}

	column, ok := allowed[sort]
	if !ok {
		return fallback
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
