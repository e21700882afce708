package api

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/auth"
	"github.com/settlr/settlr/internal/service"
)

// maxExpenseAmount is the largest amount a single expense may carry.
var maxExpenseAmount = decimal.RequireFromString("999999.99")

var (
	errNameRequired       = errors.New("name is required")
	errEmailInvalid       = errors.New("a valid email address is required")
	errGroupNameLength    = errors.New("group name must be between 2 and 100 characters")
	errMemberEmailInvalid = errors.New("a valid member email address is required")
	errAmountRange        = errors.New("amount must be positive and at most 999999.99")
	errAmountPrecision    = errors.New("amount must have at most two decimal places")
	errDescriptionLength  = errors.New("description must be between 2 and 500 characters")
)

func validateRegister(req service.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errNameRequired
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errEmailInvalid
	}
	return auth.ValidatePassword(req.Password)
}

func validateCreateGroup(req service.CreateGroupRequest) error {
	n := utf8.RuneCountInString(strings.TrimSpace(req.Name))
	if n < 2 || n > 100 {
		return errGroupNameLength
	}
	return nil
}

func validateAddMember(req service.AddMemberRequest) error {
	if _, err := mail.ParseAddress(req.UserEmail); err != nil {
		return errMemberEmailInvalid
	}
	return nil
}

func validateCreateExpense(req service.CreateExpenseRequest) error {
	if !req.Amount.IsPositive() || req.Amount.GreaterThan(maxExpenseAmount) {
		return errAmountRange
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return errAmountPrecision
	}
	n := utf8.RuneCountInString(strings.TrimSpace(req.Description))
	if n < 2 || n > 500 {
		return errDescriptionLength
	}
	return nil
}
