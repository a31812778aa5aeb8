// Package chat implements the JSON text components the client renders in
// disconnect screens, the server list and the tab list.
package chat

import (
	"encoding/json"
	"strings"
)

type Color string

const (
	Black       Color = "black"
	DarkBlue    Color = "dark_blue"
	DarkGreen   Color = "dark_green"
	DarkAqua    Color = "dark_aqua"
	DarkRed     Color = "dark_red"
	DarkPurple  Color = "dark_purple"
	Gold        Color = "gold"
	Gray        Color = "gray"
	DarkGray    Color = "dark_gray"
	Blue        Color = "blue"
	Green       Color = "green"
	Aqua        Color = "aqua"
	Red         Color = "red"
	LightPurple Color = "light_purple"
	Yellow      Color = "yellow"
	White       Color = "white"
)

// Component is a single node of a chat message. Extra holds the children that
// inherit this node's style.
type Component struct {
	Text   string      `json:"text"`
	Color  Color       `json:"color,omitempty"`
	Bold   bool        `json:"bold,omitempty"`
	Italic bool        `json:"italic,omitempty"`
	Extra  []Component `json:"extra,omitempty"`
}

// Text returns an unstyled component.
func Text(s string) Component {
	return Component{Text: s}
}

func (c Component) WithColor(color Color) Component {
	c.Color = color
	return c
}

func (c Component) Append(extra ...Component) Component {
	c.Extra = append(append([]Component{}, c.Extra...), extra...)
	return c
}

// JSON encodes the component tree the way it is sent on the wire.
func (c Component) JSON() string {
	bb, err := json.Marshal(c)
	if err != nil {
		// Component only holds strings and bools.
		panic(err)
	}
	return string(bb)
}

// String returns the plain text of the whole tree without styling.
func (c Component) String() string {
	var sb strings.Builder
	c.writeText(&sb)
	return sb.String()
}

func (c Component) writeText(sb *strings.Builder) {
	sb.WriteString(c.Text)
	for _, e := range c.Extra {
		e.writeText(sb)
	}
}

// Parse decodes a JSON chat message. Plain JSON strings are accepted as
// unstyled text.
func Parse(s string) (Component, error) {
	var c Component
	if err := json.Unmarshal([]byte(s), &c); err == nil {
		return c, nil
	}

	var text string
	if err := json.Unmarshal([]byte(s), &text); err != nil {
		return Component{}, err
	}
	return Text(text), nil
}
