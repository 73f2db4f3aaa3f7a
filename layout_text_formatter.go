package formdata

import (
	"fmt"
	"strings"
)

// formatAsText formats the layout as an ASCII tree.
func formatAsText(node *LayoutNode) string {
	var sb strings.Builder
	sb.WriteString("Multipart Body Layout\n")
	formatNodeAsText(node, "", true, &sb)
	return sb.String()
}

// formatNodeAsText recursively formats a node and its children as text.
func formatNodeAsText(node *LayoutNode, prefix string, isLast bool, sb *strings.Builder) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	if prefix == "" {
		connector = ""
	}

	sb.WriteString(fmt.Sprintf("%s%s%s\n", prefix, connector, formatNodeInfo(node)))

	childPrefix := prefix
	if prefix == "" {
		childPrefix = "  "
	} else if isLast {
		childPrefix += "   "
	} else {
		childPrefix += "│  "
	}

	for i, child := range node.Children {
		formatNodeAsText(child, childPrefix, i == len(node.Children)-1, sb)
	}
}

// formatNodeInfo formats information for a single node.
func formatNodeInfo(node *LayoutNode) string {
	parts := []string{string(node.Type)}

	if node.Name != "" {
		parts = append(parts, fmt.Sprintf(`"%s"`, node.Name))
	}

	var details []string
	if node.Boundary != "" {
		details = append(details, fmt.Sprintf("boundary=%s", node.Boundary))
	}
	if node.Filename != "" {
		details = append(details, fmt.Sprintf("filename=%s", node.Filename))
	}
	if node.MimeType != "" {
		details = append(details, fmt.Sprintf("type=%s", node.MimeType))
	}
	details = append(details, fmt.Sprintf("size=%d", node.Size))
	if node.Type != BodyNodeType {
		details = append(details, fmt.Sprintf("data=%d", node.DataSize))
	}

	parts = append(parts, fmt.Sprintf("(%s)", strings.Join(details, ", ")))
	return strings.Join(parts, " ")
}
