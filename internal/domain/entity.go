package domain

// Entity names used in error payloads, alert headers and change events.
const (
	EntityCategory   = "category"
	EntityEmployee   = "employee"
	EntityCompetence = "competence"
)
