package rest

import (
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Schedule struct {
	Service domainScheduler.ISchedulerUsecase
}

func InitRestSchedule(app fiber.Router, service domainScheduler.ISchedulerUsecase) Schedule {
	rest := Schedule{Service: service}

	app.Post("/schedule", rest.SchedulePost)
	app.Get("/schedule", rest.ListScheduled)
	app.Get("/schedule/:job_id", rest.GetScheduled)
	app.Delete("/schedule/:job_id", rest.CancelScheduled)
	return rest
}

func (controller *Schedule) SchedulePost(c *fiber.Ctx) error {
	var request domainPost.PostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(400).JSON(utils.ResponseData{Status: 400, Code: "VALIDATION_ERROR", Message: err.Error()})
	}

	job, err := controller.Service.Schedule(c.UserContext(), request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post scheduled",
		Results: job,
	})
}

func (controller *Schedule) ListScheduled(c *fiber.Ctx) error {
	jobs, err := controller.Service.List(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Scheduled jobs",
		Results: jobs,
	})
}

func (controller *Schedule) GetScheduled(c *fiber.Ctx) error {
	job, err := controller.Service.Get(c.UserContext(), c.Params("job_id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Scheduled job",
		Results: job,
	})
}

func (controller *Schedule) CancelScheduled(c *fiber.Ctx) error {
	if err := controller.Service.Cancel(c.UserContext(), c.Params("job_id")); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Scheduled job cancelled",
	})
}
