package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

// registerValidators wires the catalog enums into gin's binding
// validator so profile submissions are checked against the same fixed
// lists the scorer uses.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return domain.ValidSubject(fl.Field().String())
	})
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return domain.ValidGrade(fl.Field().String())
	})
	_ = v.RegisterValidation("schedule", func(fl validator.FieldLevel) bool {
		return domain.ValidSchedule(fl.Field().String())
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		return domain.ValidDuration(fl.Field().String())
	})
}
