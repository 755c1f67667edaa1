package leads

import "github.com/arivar/backend/internal/schema"

// SchemaDefinition returns the registry entry for the Lead payload.
func SchemaDefinition() schema.Definition {
	return schema.Definition{
		Validate: func(payload map[string]any) error {
			_, err := FromPayload(payload)
			return err
		},
		JSONSchema: JSONSchema,
	}
}

// JSONSchema describes the Lead payload for client-side form tooling.
func JSONSchema() map[string]any {
	return map[string]any{
		"title":       "Lead",
		"type":        "object",
		"description": "Contact or demo request from a website form. At least one of email or phone is required.",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "title": "Name"},
			"email":   map[string]any{"type": "string", "title": "Email", "format": "email"},
			"phone":   map[string]any{"type": "string", "title": "Phone"},
			"message": map[string]any{"type": "string", "title": "Message"},
			"source":  map[string]any{"type": "string", "title": "Source"},
		},
		"required": []string{"name"},
		"anyOf": []map[string]any{
			{"required": []string{"email"}},
			{"required": []string{"phone"}},
		},
	}
}
