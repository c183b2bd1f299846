package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleTrainee Role = "trainee"
	RoleTrainer Role = "trainer"
)

func (r Role) Valid() bool {
	return r == RoleTrainee || r == RoleTrainer
}

func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	return role, role.Valid()
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
