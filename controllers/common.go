package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"

	"github.com/gin-gonic/gin"
)

// writeErr maps the service error taxonomy onto HTTP codes: missing resources
// to 404, guard violations to 409, validation failures to 400.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrItemNotFound):
		resp.NotFound(c, err.Error())
	case services.IsGuardViolation(err):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrAddressIncomplete),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrUserExists):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBadCredentials):
		resp.Unauthorized(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func paramUint(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
