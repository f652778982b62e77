package apimodels

// TextRequest carries the free text for the bias, privacy and mood analyses.
type TextRequest struct {
	Text string `json:"text"`
}

// AutomationRequest selects either a preset job from the catalog or a
// custom job title with optional skills and experience level.
type AutomationRequest struct {
	// Preset is a catalog job value such as "software-engineer"
	Preset string `json:"preset,omitempty"`

	// Title is a custom job title, used when Preset is empty
	Title string `json:"title,omitempty"`

	Skills string `json:"skills,omitempty"`

	// Experience is one of entry, mid, senior, executive
	Experience string `json:"experience,omitempty"`
}
