package rest

import (
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Send struct {
	Service domainPost.IPostUsecase
}

func InitRestSend(app fiber.Router, service domainPost.IPostUsecase) Send {
	rest := Send{Service: service}

	app.Post("/send", rest.SendPost)
	return rest
}

// SendPost publishes immediately. Scheduling goes through the schedule
// endpoints; a scheduled_at here is rejected to keep the two surfaces apart.
func (controller *Send) SendPost(c *fiber.Ctx) error {
	var request domainPost.PostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(400).JSON(utils.ResponseData{Status: 400, Code: "VALIDATION_ERROR", Message: err.Error()})
	}

	if request.ScheduledAt != nil {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: "scheduled_at is not accepted here, use POST /schedule",
		})
	}

	response, err := controller.Service.Dispatch(c.UserContext(), request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post published",
		Results: response,
	})
}
