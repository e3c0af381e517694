// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"momopress/internal/budget"
	"momopress/internal/models"
)

// msisdnRegex matches Rwandan mobile numbers in local or international form.
var msisdnRegex = regexp.MustCompile(`^(?:07|2507)\d{8}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("msisdn", validateMSISDN)
	_ = v.RegisterValidation("period", validatePeriod)
	_ = v.RegisterValidation("sync_mode", validateSyncMode)
	_ = v.RegisterValidation("category", validateCategory)
}

// ValidMSISDN reports whether s is a Rwandan mobile number.
func ValidMSISDN(s string) bool {
	return msisdnRegex.MatchString(s)
}

func validateMSISDN(fl validator.FieldLevel) bool {
	return ValidMSISDN(fl.Field().String())
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, ok := budget.ParsePeriod(fl.Field().String())
	return ok
}

func validateSyncMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "full", "incremental":
		return true
	}
	return false
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}
