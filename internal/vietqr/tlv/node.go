package tlv

import "strings"

// Node is one entry of a payload tree. A node either carries a literal value
// or a list of children; children win when both are set.
type Node struct {
	Tag      string
	Value    string
	Children []Node
}

func Leaf(tag, value string) Node {
	return Node{Tag: tag, Value: value}
}

func Nest(tag string, children ...Node) Node {
	return Node{Tag: tag, Children: children}
}

// Encode serializes the node and, recursively, its children.
func (n Node) Encode() (string, error) {
	if len(n.Children) == 0 {
		return Field(n.Tag, n.Value)
	}

	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		s, err := c.Encode()
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return Group(n.Tag, parts...)
}

// Encode serializes nodes one after another. The first error aborts and no
// partial output is returned.
func Encode(nodes ...Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		s, err := n.Encode()
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
