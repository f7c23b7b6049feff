package dto

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched, not reset.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Goals     *string `json:"fitness_goals,omitempty"`
}
