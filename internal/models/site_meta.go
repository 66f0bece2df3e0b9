package models

// SiteMeta is the single-row site metadata record. Socials is a JSON object
// stored as text.
type SiteMeta struct {
	Email    *string `json:"email,omitempty"`
	Location *string `json:"location,omitempty"`
	Socials  string  `json:"socials"`
	Hero     string  `json:"hero"`
}
