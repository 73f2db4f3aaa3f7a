package formdata

import (
	"encoding/json"
)

// formatAsJSON formats the layout as JSON.
func formatAsJSON(node *LayoutNode) (string, error) {
	bytes, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
