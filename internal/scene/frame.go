package scene

// Layer is a flattened, render-ready node with its world transform and
// inherited opacity.
type Layer struct {
	Kind      Kind
	Path      string
	Transform Transform
	Opacity   float64
	Blur      float64
	Clip      Clip
	Style     Style
	Text      string
	Asset     string
	Effect    string
	Params    map[string]float64
	Colors    []string
	Depth     int
}

// Frame is the visual state of one output frame: a background color and
// layers in paint order.
type Frame struct {
	Background string
	Layers     []Layer
}

// Flatten evaluates the tree depth-first into paint order. Containers
// contribute transform and opacity but produce no layer of their own.
// Fully transparent subtrees are skipped.
func Flatten(background string, root *Node) Frame {
	f := Frame{Background: background}
	if root != nil {
		flatten(&f.Layers, root, Transform{Scale: 1}, 1, 0, 0, "")
	}
	return f
}

func flatten(out *[]Layer, n *Node, parent Transform, opacity, blur float64, depth int, prefix string) {
	alpha := opacity * n.Opacity
	if alpha <= 0 {
		return
	}
	world := parent.Compose(n.Transform)
	path := n.Name
	if prefix != "" {
		path = prefix + "/" + n.Name
	}
	if n.Blur > blur {
		blur = n.Blur
	}

	if n.Kind != KindContainer {
		*out = append(*out, Layer{
			Kind:      n.Kind,
			Path:      path,
			Transform: world,
			Opacity:   alpha,
			Blur:      blur,
			Style:     n.Style,
			Text:      n.Text,
			Asset:     n.Asset,
			Effect:    n.Effect,
			Params:    n.Params,
			Colors:    n.Colors,
			Depth:     depth,
		})
	}

	for _, c := range n.Children {
		flatten(out, c, world, alpha, blur, depth+1, path)
	}
}

// Find returns the first layer whose path ends with name.
func (f Frame) Find(name string) (Layer, bool) {
	for _, l := range f.Layers {
		if l.Path == name || hasSuffixSegment(l.Path, name) {
			return l, true
		}
	}
	return Layer{}, false
}

func hasSuffixSegment(path, name string) bool {
	if len(path) <= len(name) {
		return false
	}
	return path[len(path)-len(name):] == name && path[len(path)-len(name)-1] == '/'
}
