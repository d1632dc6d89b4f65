// Package validation holds the syntactic checks applied to user input before
// any network activity.
package validation

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// AddressTag is the struct tag name for base58 wallet addresses
const AddressTag = "solana_address"

// 32 to 44 base58 characters: digits 1-9, letters without 0, O, I and l
var addressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsValidAddress reports whether candidate looks like a Solana address after
// trimming surrounding whitespace. It does not check that the key decodes to
// 32 bytes or that the account exists on chain.
func IsValidAddress(candidate string) bool {
	return addressPattern.MatchString(strings.TrimSpace(candidate))
}

func validateAddress(fl validator.FieldLevel) bool {
	address, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsValidAddress(address)
}

// RegisterAddressValidator registers AddressTag on v
func RegisterAddressValidator(v *validator.Validate) error {
	return v.RegisterValidation(AddressTag, validateAddress)
}

// RegisterGinValidators wires the custom tags into gin's binding engine
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterAddressValidator(v)
}
