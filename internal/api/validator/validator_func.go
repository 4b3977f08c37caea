package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Format only; checksum verification belongs to the registration flow
// upstream.
const cpfRegex = `^\d{11}$`

const (
	CPFTag = "cpf_format"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	CPFTag: ValidateCPF,
}

func ValidateCPF(fl validator.FieldLevel) bool {
	cpf := fl.Field().String()
	return regexp.MustCompile(cpfRegex).MatchString(cpf)
}
