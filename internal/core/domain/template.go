package domain

import "time"

// PromptTemplate is a reusable prompt placed ahead of exported materials.
type PromptTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// TemplateSet is the persisted template collection with its default marker.
type TemplateSet struct {
	Templates       []PromptTemplate `json:"templates"`
	DefaultTemplate string           `json:"default_template"`
	LastUpdated     time.Time        `json:"last_updated,omitzero"`
}

// Find returns the template with the given id, or nil.
func (ts TemplateSet) Find(id string) *PromptTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}
