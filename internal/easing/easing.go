// Package easing maps a closed set of easing-family identifiers to pure
// numeric remappings of normalized progress.
package easing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fogleman/ease"
)

// ErrUnknownFamily is returned when an easing tag does not name a family.
var ErrUnknownFamily = errors.New("unknown easing family")

// Func remaps normalized progress. Inputs outside [0,1] are allowed and
// continue the curve, which extended extrapolation relies on.
type Func func(t float64) float64

// Family identifies an easing curve.
type Family string

const (
	Linear      Family = "linear"
	QuadOut     Family = "quad-out"
	CubicOut    Family = "cubic-out"
	QuartOut    Family = "quart-out"
	ExpoOut     Family = "expo-out"
	CubicInOut  Family = "cubic-in-out"
	SineInOut   Family = "sine-in-out"
	ElasticOut  Family = "elastic-out"
	BackOut     Family = "back-out"
	BackOutSoft Family = "back-out-soft"
	BounceOut   Family = "bounce-out"
	Spring      Family = "spring"
)

var funcs = map[Family]Func{
	Linear:      ease.Linear,
	QuadOut:     ease.OutQuad,
	CubicOut:    ease.OutCubic,
	QuartOut:    ease.OutQuart,
	ExpoOut:     ease.OutExpo,
	CubicInOut:  ease.InOutCubic,
	SineInOut:   ease.InOutSine,
	ElasticOut:  ease.OutElastic,
	BackOut:     ease.OutBack,
	BackOutSoft: backOut(1.5),
	BounceOut:   ease.OutBounce,
	Spring:      defaultSpring.At,
}

// aliases accepts the tags written by timeline builders ("power2.out") and
// by interpolation helpers ("out(cubic)").
var aliases = map[string]Family{
	"":                   Linear,
	"none":               Linear,
	"power0":             Linear,
	"power1.out":         QuadOut,
	"power2.out":         CubicOut,
	"power3.out":         QuartOut,
	"expo.out":           ExpoOut,
	"power2.inout":       CubicInOut,
	"sine.inout":         SineInOut,
	"elastic.out":        ElasticOut,
	"elastic.out(1,0.3)": ElasticOut,
	"back.out":           BackOut,
	"back.out(1.5)":      BackOutSoft,
	"bounce.out":         BounceOut,
	"out(cubic)":         CubicOut,
	"out(back(1.5))":     BackOutSoft,
}

// Families lists every known family in a stable order.
func Families() []Family {
	return []Family{
		Linear, QuadOut, CubicOut, QuartOut, ExpoOut, CubicInOut,
		SineInOut, ElasticOut, BackOut, BackOutSoft, BounceOut, Spring,
	}
}

// Parse resolves a family name or builder tag.
func Parse(tag string) (Family, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), " ", ""))
	if _, ok := funcs[Family(key)]; ok {
		return Family(key), nil
	}
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, tag)
}

// MustParse is Parse for tags fixed in the script. It panics on an unknown
// tag so a bad script fails when it is defined, not while it renders.
func MustParse(tag string) Family {
	f, err := Parse(tag)
	if err != nil {
		panic(err)
	}
	return f
}

// Lookup returns the pinned easing function for f.
func Lookup(f Family) (Func, error) {
	fn, ok := funcs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
	}
	return pin(fn), nil
}

// MustLookup is Lookup for families known at compile time.
func MustLookup(f Family) Func {
	fn, err := Lookup(f)
	if err != nil {
		panic(err)
	}
	return fn
}

// pin makes the curve hit 0 and 1 exactly at the segment ends. Overshooting
// families still overshoot in between.
func pin(fn Func) Func {
	return func(t float64) float64 {
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return fn(t)
	}
}

func backOut(s float64) Func {
	return func(t float64) float64 {
		t--
		return t*t*((s+1)*t+s) + 1
	}
}
