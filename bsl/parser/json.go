package parser

import "encoding/json"

type jsonNode struct {
	Name     string      `json:"name"`
	From     int         `json:"from"`
	To       int         `json:"to"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Root.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Name: n.Name(),
		From: n.From,
		To:   n.To,
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Message: n.Error.Message,
		}
		for _, exp := range n.Error.Expected {
			jn.Error.Expected = append(jn.Error.Expected, exp.String())
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
