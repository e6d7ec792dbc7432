package repository

import "strings"

// likeEscape is the ESCAPE character for substring filters. '!' needs no
// quoting in MySQL, PostgreSQL or SQLite string literals.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern builds a lower-cased LIKE pattern matching q literally
// anywhere in the value. Use it with likeClause.
func containsPattern(q string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(q)) + "%"
}

// likeClause is a case-insensitive LIKE condition on column.
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}
