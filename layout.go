package formdata

import "fmt"

// LayoutNodeType defines what a layout node describes.
type LayoutNodeType string

const (
	BodyNodeType  LayoutNodeType = "Body"
	FieldNodeType LayoutNodeType = "FieldPart"
	FileNodeType  LayoutNodeType = "FilePart"
)

// LayoutNode describes a body, or one of its parts, without the payload.
// Size is the exact number of bytes the node contributes to the encoded
// body; for the root it equals the Content-Length.
type LayoutNode struct {
	Type     LayoutNodeType `json:"type"`
	Name     string         `json:"name,omitempty"`
	Filename string         `json:"filename,omitempty"`
	MimeType string         `json:"mimeType,omitempty"`
	Boundary string         `json:"boundary,omitempty"` // root only
	Size     int64          `json:"size"`
	DataSize int            `json:"dataSize"` // payload bytes only
	Children []*LayoutNode  `json:"children,omitempty"`
}

// FormatType represents different output formats for a layout.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
)

// Explain resolves parts the way Build does and reports their layout.
func (b *Builder) Explain(object any, files *Files, optFns ...func(*Options)) (*LayoutNode, error) {
	opts := b.options(optFns)

	boundary, err := resolveBoundary(opts)
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	parts, err := b.parts(object, files, opts)
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	if err := checkCollision(parts, boundary); err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	root := &LayoutNode{
		Type:     BodyNodeType,
		Boundary: boundary,
		Size:     int64(len(closeDelimiter(boundary))),
		Children: make([]*LayoutNode, 0, len(parts)),
	}
	for _, p := range parts {
		node := &LayoutNode{
			Type:     FieldNodeType,
			Name:     p.Name,
			Size:     p.size(boundary),
			DataSize: len(p.Body),
		}
		if p.Kind == FilePart {
			node.Type = FileNodeType
			node.Filename = p.Filename
			node.MimeType = p.MimeType
		}
		root.Size += node.Size
		root.DataSize += node.DataSize
		root.Children = append(root.Children, node)
	}

	b.log.Debug("Explained multipart body", "part_count", len(parts), "content_length", root.Size)
	return root, nil
}

// Format renders the layout in the requested format.
func (n *LayoutNode) Format(format FormatType) (string, error) {
	switch format {
	case FormatText, "":
		return formatAsText(n), nil
	case FormatJSON:
		return formatAsJSON(n)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
