package users

import (
	"strings"
	"time"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
)

// UpsertUserInput carries the identity payload for a create-or-refresh.
// Password is optional; when present it is hashed before storage.
type UpsertUserInput struct {
	Email    string
	Name     string
	Password string
}

func (in UpsertUserInput) normalized() UpsertUserInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in UpsertUserInput) toModel(passwordHash *string, now time.Time) *models.User {
	return &models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: passwordHash,
		LastUpdated:  now,
	}
}
