package routers

import (
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/services/core/intake"

	"github.com/go-chi/chi/v5"
)

func attachIntakeRoutes(router chi.Router, middlewares *middlewares.Middlewares, intakeController *intake.IntakeController) {
	router.Get("/doctors", intakeController.ListDoctors)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", intakeController.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", intakeController.GetSession)
			r.Put("/answers", intakeController.CaptureAnswer)
			r.Post("/attachments/{questionID}", intakeController.UploadAttachment)
			r.Post("/next", intakeController.NextStep)
			r.Post("/previous", intakeController.PreviousStep)
			r.Put("/language", intakeController.ChangeLanguage)
			r.Post("/submit", intakeController.Submit)
		})
	})
}
