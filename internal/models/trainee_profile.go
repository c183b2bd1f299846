package models

import "time"

type TraineeProfile struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      *string   `json:"full_name"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Gender        *string   `json:"gender"`
	Height        *float64  `json:"height"`
	Weight        *float64  `json:"weight"`
	Waist         *float64  `json:"waist"`
	ActivityLevel *string   `json:"activity_level"`
	Goal          *string   `json:"goal"`
	ProfileImage  *string   `json:"profile_image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
