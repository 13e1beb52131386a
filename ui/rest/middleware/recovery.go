package middleware

import (
	"fmt"

	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panicking handler into the standard error envelope instead
// of tearing the connection down. Taxonomy errors keep their status and code.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			res := utils.ResponseData{
				Status:  fiber.StatusInternalServerError,
				Code:    "INTERNAL_SERVER_ERROR",
				Message: fmt.Sprintf("%v", recovered),
			}
			if generic, ok := recovered.(pkgError.GenericError); ok {
				res.Status = generic.StatusCode()
				res.Code = generic.ErrCode()
				res.Message = generic.Error()
			}

			logrus.WithField("path", c.Path()).Errorf("[REST] Panic recovered: %v", recovered)

			_ = c.Status(res.Status).JSON(res)
		}()

		return c.Next()
	}
}
