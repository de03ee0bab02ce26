package controllers

import (
	"net/http"
	"strconv"

	"github.com/pawmart/pawmart/pkg/router"
)

// paramID parses a numeric route parameter. Returns 0 when the segment is
// missing or not a positive integer.
func paramID(r *http.Request, key string) uint {
	raw := router.Param(r, key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
