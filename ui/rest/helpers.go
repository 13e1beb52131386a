package rest

import (
	"errors"

	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// errorResponse maps taxonomy errors to their HTTP status and stable code;
// anything else becomes a 500.
func errorResponse(c *fiber.Ctx, err error) error {
	var generic pkgError.GenericError
	if errors.As(err, &generic) {
		return c.Status(generic.StatusCode()).JSON(utils.ResponseData{
			Status:  generic.StatusCode(),
			Code:    generic.ErrCode(),
			Message: generic.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ResponseData{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: err.Error(),
	})
}
