package leads

import (
	"encoding/json"
	"fmt"
)

// Kind is the document kind leads are persisted under.
const Kind = "lead"

// SchemaName is the name the Lead payload schema is registered under.
const SchemaName = "Lead"

// Lead represents a contact or demo request submitted from a website form.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Validate checks the lead against the schema rules.
func (l *Lead) Validate() error {
	if l.Name == "" {
		return ErrInvalidName
	}
	if l.Email == "" && l.Phone == "" {
		return ErrMissingContact
	}
	return nil
}

// FromPayload builds a validated Lead from an untyped payload. Unknown
// fields are ignored; fields of the wrong type fail validation.
func FromPayload(payload map[string]any) (*Lead, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("leads: encode payload: %w", err)
	}

	var lead Lead
	if err := json.Unmarshal(raw, &lead); err != nil {
		return nil, fmt.Errorf("leads: %w", err)
	}
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return &lead, nil
}
