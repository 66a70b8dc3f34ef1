package taxonomy

import "fmt"

// DefinitionError reports a taxonomy that violates a catalog invariant.
type DefinitionError struct {
	Category string
	Skill    string
	Alias    string
	Message  string
}

func (e *DefinitionError) Error() string {
	switch {
	case e.Alias != "":
		return fmt.Sprintf("invalid taxonomy: %s/%s: alias %q: %s", e.Category, e.Skill, e.Alias, e.Message)
	case e.Skill != "":
		return fmt.Sprintf("invalid taxonomy: %s/%s: %s", e.Category, e.Skill, e.Message)
	case e.Category != "":
		return fmt.Sprintf("invalid taxonomy: %s: %s", e.Category, e.Message)
	default:
		return fmt.Sprintf("invalid taxonomy: %s", e.Message)
	}
}
