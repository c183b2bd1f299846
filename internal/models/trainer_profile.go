package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanTier string

const (
	PlanBronze PlanTier = "bronze"
	PlanSilver PlanTier = "silver"
	PlanGold   PlanTier = "gold"
)

func (t PlanTier) Valid() bool {
	return t == PlanBronze || t == PlanSilver || t == PlanGold
}

type Plan struct {
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"duration_months"`
}

type Certificate struct {
	Name string `json:"name"`
	File string `json:"file"`
}

type TrainerProfile struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	FullName        string            `json:"full_name"`
	Gender          *string           `json:"gender"`
	Bio             *string           `json:"bio"`
	Specializations map[string]int    `json:"specializations"`
	Plans           map[PlanTier]Plan `json:"plans"`
	ProfileImage    *string           `json:"profile_image"`
	Certificates    []Certificate     `json:"certificates"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TotalExperience sums the years listed across specializations.
func (p TrainerProfile) TotalExperience() int {
	total := 0
	for _, years := range p.Specializations {
		total += years
	}
	return total
}
