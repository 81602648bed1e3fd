package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// indianMobile matches a 10-digit subscriber number, optionally behind
// a +91 or 91 country prefix.
var indianMobile = regexp.MustCompile(`^(\+?91)?[6-9][0-9]{9}$`)

// RegisterValidators installs custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("in_mobile", func(fl validator.FieldLevel) bool {
		return indianMobile.MatchString(fl.Field().String())
	})
}
