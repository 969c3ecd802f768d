package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
)

const maxObservationLen = 500

var allowedPaymentMethods = map[string]bool{
	"pix":             true,
	"cartao":          true,
	"dinheiro":        true,
	"cartao_dinheiro": true,
}

// keepRunes drops every rune not in the letter/digit/space classes or
// the extra set. Input sanitization, not escaping: anything suspicious
// simply disappears before length checks run.
func keepRunes(s, extra string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(extra, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sanitizeCustomerName(name string) (string, error) {
	name = strings.TrimSpace(keepRunes(strings.TrimSpace(name), "-,.'"))
	if len([]rune(name)) < 2 {
		return "", apperr.New(apperr.Validation, "Name must have at least 2 characters")
	}
	if len([]rune(name)) > 100 {
		return "", apperr.New(apperr.Validation, "Name is too long (maximum 100 characters)")
	}
	return name, nil
}

// sanitizePhone keeps digits only and requires a 10 or 11 digit number
// whose area code does not start with zero.
func sanitizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) < 10 || len(clean) > 11 {
		return "", apperr.New(apperr.Validation,
			fmt.Sprintf("Phone must have 10 or 11 digits (got %d)", len(clean)))
	}
	if clean[0] == '0' {
		return "", apperr.New(apperr.Validation, "Phone area code cannot start with 0")
	}
	return clean, nil
}

// sanitizeCEP validates the Brazilian postal code: exactly 8 digits,
// not all zeros.
func sanitizeCEP(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) != 8 {
		return "", apperr.New(apperr.Validation,
			fmt.Sprintf("CEP must have exactly 8 digits (got %d)", len(clean)))
	}
	if clean == "00000000" {
		return "", apperr.New(apperr.Validation, "CEP 00000000 does not exist")
	}
	return clean, nil
}

type cleanAddress struct {
	CEP          string
	Street       string
	Number       string
	Neighborhood string
}

func sanitizeAddress(in *OrderAddressIn) (*cleanAddress, error) {
	if in == nil {
		return nil, apperr.New(apperr.Validation, "Address is required for delivery orders")
	}

	cep, err := sanitizeCEP(in.CEP)
	if err != nil {
		return nil, err
	}

	street := strings.TrimSpace(keepRunes(strings.TrimSpace(in.Street), "-,./°ª"))
	if len([]rune(street)) < 3 {
		return nil, apperr.New(apperr.Validation, "Street must have at least 3 characters")
	}

	number := keepRunes(strings.TrimSpace(in.Number), "/-")
	number = strings.Join(strings.Fields(number), "")
	if number == "" {
		return nil, apperr.New(apperr.Validation, "Address number is required")
	}

	neighborhood := strings.TrimSpace(keepRunes(strings.TrimSpace(in.Neighborhood), "-."))
	if len([]rune(neighborhood)) < 2 {
		return nil, apperr.New(apperr.Validation, "Neighborhood must have at least 2 characters")
	}

	return &cleanAddress{CEP: cep, Street: street, Number: number, Neighborhood: neighborhood}, nil
}

func validatePaymentMethod(method string) (string, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if !allowedPaymentMethods[method] {
		return "", apperr.New(apperr.Validation, "Invalid payment method")
	}
	return method, nil
}

// sanitizeObservation trims and truncates; an over-long note is not
// worth failing an order over.
func sanitizeObservation(obs string) string {
	obs = strings.TrimSpace(obs)
	runes := []rune(obs)
	if len(runes) > maxObservationLen {
		return string(runes[:maxObservationLen])
	}
	return obs
}
