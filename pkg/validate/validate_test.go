package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"nullable,digits=10"`
}

func TestStructRequired(t *testing.T) {
	errs := Struct(signupInput{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "phone")
}

func TestStructValid(t *testing.T) {
	errs := Struct(signupInput{Name: "Ada", Email: "ada@example.com", Phone: "0123456789"})
	assert.Empty(t, errs)
}

func TestEmailRule(t *testing.T) {
	errs := Struct(signupInput{Name: "Ada", Email: "not-an-email"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestDigitsRule(t *testing.T) {
	errs := Struct(signupInput{Name: "Ada", Email: "ada@example.com", Phone: "12ab"})
	assert.Contains(t, errs, "phone")
}

func TestNumericBounds(t *testing.T) {
	type ratingInput struct {
		Stars int `json:"stars" validate:"required,gte=1,lte=5"`
	}
	assert.Contains(t, Struct(ratingInput{Stars: 6}), "stars")
	assert.Contains(t, Struct(ratingInput{Stars: 0}), "stars") // required catches zero
	assert.Empty(t, Struct(ratingInput{Stars: 3}))
}

func TestInRuleKeepsParams(t *testing.T) {
	type input struct {
		Status string `json:"status" validate:"required,in=processing,shipped,delivered,cancelled"`
	}
	assert.Empty(t, Struct(input{Status: "shipped"}))
	assert.Contains(t, Struct(input{Status: "lost"}), "status")
}

func TestBetweenRule(t *testing.T) {
	type input struct {
		Card string `json:"card_number" validate:"required,digits=16"`
		Qty  int    `json:"qty" validate:"required,between=1,99"`
	}
	assert.Empty(t, Struct(input{Card: "4242424242424242", Qty: 2}))
	assert.Contains(t, Struct(input{Card: "4242424242424242", Qty: 100}), "qty")
}

func TestRegexRule(t *testing.T) {
	type input struct {
		Expiry string `json:"expiry" validate:"required,regex=^\\d{2}/\\d{2}$"`
	}
	assert.Empty(t, Struct(input{Expiry: "11/28"}))
	assert.Contains(t, Struct(input{Expiry: "2028-11"}), "expiry")
}

func TestDateRule(t *testing.T) {
	type input struct {
		Day string `json:"day" validate:"required,date"`
	}
	assert.Empty(t, Struct(input{Day: "2026-03-15"}))
	assert.Contains(t, Struct(input{Day: "not a date"}), "day")
}

func TestSplitRules(t *testing.T) {
	rules := splitRules("required,in=a,b,c,max=100")
	assert.Equal(t, []string{"required", "in=a,b,c", "max=100"}, rules)
}
