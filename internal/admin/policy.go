package admin

import (
	"net/http"
	"strings"
)

// RoleHeader carries the caller's role, set by the fronting proxy.
const RoleHeader = "X-Geomap-Role"

// Policy decides whether a request may modify records.
type Policy struct {
	ReadOnly bool
}

func (p Policy) HasChangePermission(r *http.Request) bool {
	if p.ReadOnly {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(r.Header.Get(RoleHeader)), "viewer")
}
