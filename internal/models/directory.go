package models

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type TrainerCard struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	FullName        string            `json:"full_name"`
	Bio             string            `json:"bio"`
	ProfileImage    string            `json:"profile_image"`
	Specializations map[string]int    `json:"specializations"`
	Plans           map[PlanTier]Plan `json:"plans"`
	TotalExperience int               `json:"total_experience"`
	MatchScore      int               `json:"match_score,omitempty"`
}

type TrainerDetail struct {
	TrainerProfile
	BioHTML         string `json:"bio_html"`
	TotalExperience int    `json:"total_experience"`
}
