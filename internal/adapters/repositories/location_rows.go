package repositories

import (
	"database/sql"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/ports"
	"strings"
	"time"
)

// Whitelisted ORDER BY clauses; ordering keys never reach SQL text directly.
var orderClauses = map[string]string{
	"":                       "name, id",
	ports.OrderByName:        "name, id",
	ports.OrderByNameDesc:    "name DESC, id",
	ports.OrderByCreated:     "created_at, id",
	ports.OrderByCreatedDesc: "created_at DESC, id",
}

func orderClause(ordering string) (string, error) {
	clause, ok := orderClauses[ordering]
	if !ok {
		return "", fmt.Errorf("unsupported ordering %q", ordering)
	}
	return clause, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching search literally anywhere.
// Queries using it must declare ESCAPE '\'.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// searchText is the lowercase name and address stored for searching.
// Folding happens in Go because SQLite's LOWER only folds ASCII.
func searchText(loc *domain.Location) string {
	return strings.ToLower(loc.Name + "\n" + loc.Address)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var (
		loc       domain.Location
		lon, lat  sql.NullFloat64
		createdMs int64
	)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Address, &lon, &lat, &createdMs); err != nil {
		return nil, err
	}

	if lon.Valid {
		loc.Lon = &lon.Float64
	}
	if lat.Valid {
		loc.Lat = &lat.Float64
	}
	loc.CreatedAt = time.UnixMilli(createdMs).UTC()

	return &loc, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
