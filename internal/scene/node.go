// Package scene models a frame's visual content as a tree of nodes that is
// flattened into an ordered layer list for compositing.
package scene

// Kind tags a node variant.
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindImage
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Transform is a node's placement relative to its parent. Translation is in
// pixels, rotation in degrees. A zero Scale means 1. The root of a scene
// sits at the frame center with y growing downward.
type Transform struct {
	X, Y             float64
	Scale            float64
	Rotate           float64
	RotateX, RotateY float64
}

// Compose applies child on top of parent.
func (t Transform) Compose(child Transform) Transform {
	s := t.scale()
	return Transform{
		X:       t.X + s*child.X,
		Y:       t.Y + s*child.Y,
		Scale:   s * child.scale(),
		Rotate:  t.Rotate + child.Rotate,
		RotateX: t.RotateX + child.RotateX,
		RotateY: t.RotateY + child.RotateY,
	}
}

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Style carries paint and typography. Colors are CSS hex strings.
type Style struct {
	Color      string
	Fill       string
	Stroke     string
	Font       string
	FontSize   float64
	FontWeight int
}

// Clip restricts a layer to part of the frame. Fractions are of the frame
// size; the zero value does not clip.
type Clip struct {
	Shape  ClipShape
	Amount float64
}

// ClipShape selects the clip geometry.
type ClipShape int

const (
	ClipNone ClipShape = iota
	// ClipRevealLeft shows the leftmost Amount of the frame width.
	ClipRevealLeft
	// ClipCircle shows a centered circle whose radius is Amount of the half-diagonal.
	ClipCircle
)

// Node is one element of a scene tree.
type Node struct {
	Kind      Kind
	Name      string
	Transform Transform
	// Opacity multiplies into children. Constructors set it to 1; a
	// literal Node{} is fully transparent.
	Opacity  float64
	Blur     float64
	Style    Style
	Text     string
	Asset    string
	Effect   string
	Params   map[string]float64
	// Colors holds gradient stops or per-element tints.
	Colors   []string
	Children []*Node
}

// Container groups children.
func Container(name string, children ...*Node) *Node {
	return &Node{Kind: KindContainer, Name: name, Opacity: 1, Children: children}
}

// Text is a text run.
func Text(name, text string, style Style) *Node {
	return &Node{Kind: KindText, Name: name, Opacity: 1, Text: text, Style: style}
}

// Image references a still asset by URI.
func Image(name, uri string, width, height float64) *Node {
	return &Node{
		Kind:    KindImage,
		Name:    name,
		Opacity: 1,
		Asset:   uri,
		Params:  map[string]float64{"width": width, "height": height},
	}
}

// Effect is a procedural layer (gradient, vignette, particle, shape)
// described by name and numeric parameters.
func Effect(name, effect string, style Style, params map[string]float64) *Node {
	return &Node{Kind: KindEffect, Name: name, Opacity: 1, Effect: effect, Style: style, Params: params}
}

// With sets the transform and returns n for chaining.
func (n *Node) With(t Transform) *Node {
	n.Transform = t
	return n
}

// Fade multiplies the node's opacity and returns n.
func (n *Node) Fade(opacity float64) *Node {
	n.Opacity *= opacity
	return n
}

// Tinted sets the color stops and returns n.
func (n *Node) Tinted(colors ...string) *Node {
	n.Colors = colors
	return n
}

// Blurred sets the blur radius and returns n.
func (n *Node) Blurred(px float64) *Node {
	n.Blur = px
	return n
}
