// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("measure", validateMeasure)
		_ = v.RegisterValidation("taxable", validateTaxable)
		_ = v.RegisterValidation("breakdown_dim", validateBreakdownDimension)
	}
}

func validateMeasure(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "g", "kg", "L", "mg", "lbs":
		return true
	}
	return false
}

func validateTaxable(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Not-taxable", "Taxable", "Franked Dividends":
		return true
	}
	return false
}

func validateBreakdownDimension(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "tag", "shop", "location", "category", "sub_category", "sub_sub_category", "date":
		return true
	}
	return false
}
