// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a row of the users table. Credentials never leave the server:
// they are excluded from JSON.
type Account struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	PasswordSalt []byte    `json:"-"`
	Phone        *string   `json:"phone"`
	City         *string   `json:"city"`
	Plan         *string   `json:"plan"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AccountPatch is a partial update of an account. A nil field is left
// untouched; an empty string clears an optional column.
type AccountPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	City     *string
	Plan     *string
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil && p.City == nil && p.Plan == nil
}

// Normalize trims the patch, lowercases the email and canonicalizes the plan.
// It fails with common.ErrMissingFields when a required column would become
// blank and with common.ErrInvalidPlan for an unknown plan.
func (p AccountPatch) Normalize() (AccountPatch, error) {
	out := AccountPatch{
		FullName: trimmed(p.FullName),
		Email:    trimmed(p.Email),
		Phone:    trimmed(p.Phone),
		City:     trimmed(p.City),
	}

	if out.FullName != nil && *out.FullName == "" {
		return AccountPatch{}, common.ErrMissingFields
	}
	if out.Email != nil {
		if *out.Email == "" {
			return AccountPatch{}, common.ErrMissingFields
		}
		e := NormalizeEmail(*out.Email)
		out.Email = &e
	}
	if p.Plan != nil {
		plan, err := NormalizePlan(*p.Plan)
		if err != nil {
			return AccountPatch{}, err
		}
		out.Plan = &plan
	}
	return out, nil
}

// NormalizeEmail is the canonical form stored in, and looked up from, the
// users table.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var plans = map[string]struct{}{
	"basic":    {},
	"standard": {},
	"premium":  {},
}

// NormalizePlan maps user input to a stored plan. "" and "none" clear the
// plan and come back as "".
func NormalizePlan(plan string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(plan))
	if p == "" || p == "none" {
		return "", nil
	}
	if _, ok := plans[p]; !ok {
		return "", common.ErrInvalidPlan
	}
	return p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
