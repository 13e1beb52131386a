package rest

import (
	"github.com/Kofidell4545/pluseposter/config"
	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	Service domainCredential.ICredentialUsecase
}

func InitRestHealth(app fiber.Router, service domainCredential.ICredentialUsecase) Health {
	rest := Health{Service: service}

	app.Get("/health", rest.GetHealth)
	return rest
}

type healthResponse struct {
	Version   string                       `json:"version"`
	Platforms map[domainPost.Platform]bool `json:"platforms"`
}

// GetHealth reports which platforms have complete credentials. Key names and
// values stay out of the response.
func (controller *Health) GetHealth(c *fiber.Ctx) error {
	configured := make(map[domainPost.Platform]bool, len(domainPost.Platforms()))
	for _, platform := range domainPost.Platforms() {
		configured[platform] = false
	}
	for _, platform := range controller.Service.Configured() {
		configured[platform] = true
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "OK",
		Results: healthResponse{
			Version:   config.AppVersion,
			Platforms: configured,
		},
	})
}
