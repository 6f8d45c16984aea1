package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the edge proxy after it has validated credentials.
// Credential validation itself is out of scope here; requests without the
// headers are treated as unauthenticated.
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
)

// resolvePrincipal builds the acting principal from the identity headers.
func resolvePrincipal(ctx echo.Context) (principal.Principal, error) {
	rawID := ctx.Request().Header.Get(headerUserID)
	if rawID == "" {
		return principal.Principal{}, errs.NewUnauthenticatedError("identity headers are missing")
	}

	subjectID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return principal.Principal{}, errs.NewUnauthenticatedError("subject id is not a valid uuid")
	}

	role, err := principal.ToRole(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return principal.Principal{}, errs.NewUnauthenticatedError("role is missing or unknown")
	}

	return principal.New(subjectID, ctx.Request().Header.Get(headerUserEmail), role)
}
