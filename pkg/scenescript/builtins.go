package scenescript

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/glowfield/lumen/pkg/geometry"
)

// defaultEmissive is used when a shape builtin omits :emissive.
const defaultEmissive = 1.0

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: half-width -> half_width (identifiers
//     only). zygomys reads hyphens as the subtraction operator.
//
//  3. Lisp comments to zygomys comments: ; -> //.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Copy backtick-quoted string literals untouched.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator stays a minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a geometry.Shape so builtins can pass trees around.
type sexpShape struct {
	shape geometry.Shape
	kind  string // builtin that created it, for error messages
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.kind)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpVec wraps a 2D point literal.
type sexpVec struct {
	vec v2.Vec
}

func (v *sexpVec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec %.1f %.1f)", v.vec.X, v.vec.Y)
}
func (v *sexpVec) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// only rejects keywords outside the allowed set, so a typo on an optional
// keyword fails loudly instead of being silently ignored.
func (pa kwArgs) only(builtin string, allowed ...string) error {
	for name := range pa.kw {
		known := false
		for _, a := range allowed {
			if name == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%s: unknown argument :%s", builtin, name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toVec extracts a point from a sexpVec.
func toVec(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected (vec x y), got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a geometry.Shape from a sexpShape.
func toShape(s zygo.Sexp) (geometry.Shape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// requireFloat extracts a mandatory numeric keyword argument.
func requireFloat(pa kwArgs, builtin, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing :%s", builtin, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	return f, nil
}

// optFloat extracts an optional numeric keyword argument.
func optFloat(pa kwArgs, builtin, key string, def float64) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	return f, nil
}

// requireVec extracts a mandatory point keyword argument.
func requireVec(pa kwArgs, builtin, key string) (v2.Vec, error) {
	v, ok := pa.kw[key]
	if !ok {
		return v2.Vec{}, fmt.Errorf("%s: missing :%s", builtin, key)
	}
	vec, err := toVec(v)
	if err != nil {
		return v2.Vec{}, fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	return vec, nil
}

// optInt extracts an optional integer keyword argument into dst.
func optInt(pa kwArgs, builtin, key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	*dst = n
	return nil
}

// combine folds two or more shape arguments left to right with op.
func combine(name string, args []zygo.Sexp, op func(a, b geometry.Shape) geometry.Shape) (zygo.Sexp, error) {
	if len(args) < 2 {
		return zygo.SexpNull, fmt.Errorf("%s: want at least 2 shapes, got %d", name, len(args))
	}
	acc, err := toShape(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: argument 1: %w", name, err)
	}
	for i := 1; i < len(args); i++ {
		s, err := toShape(args[i])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		acc = op(acc, s)
	}
	return &sexpShape{shape: acc, kind: name}, nil
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins construct geometry values and record the
// final scene into doc.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, doc *Document) {

	// -----------------------------------------------------------------------
	// (vec 256 192)
	// -----------------------------------------------------------------------
	env.AddFunction("vec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec: y: %w", err)
		}
		return &sexpVec{vec: v2.Vec{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :center (vec 256 192) :radius 64 :emissive 1.0)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("circle", "center", "radius", "emissive"); err != nil {
			return zygo.SexpNull, err
		}

		center, err := requireVec(pa, "circle", "center")
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := requireFloat(pa, "circle", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		emissive, err := optFloat(pa, "circle", "emissive", defaultEmissive)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{
			shape: geometry.NewCircle(center, radius, emissive),
			kind:  "circle",
		}, nil
	})

	// -----------------------------------------------------------------------
	// (plane :point (vec 0 300) :normal (vec 0 -1) :emissive 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("plane", "point", "normal", "emissive"); err != nil {
			return zygo.SexpNull, err
		}

		point, err := requireVec(pa, "plane", "point")
		if err != nil {
			return zygo.SexpNull, err
		}
		normal, err := requireVec(pa, "plane", "normal")
		if err != nil {
			return zygo.SexpNull, err
		}
		emissive, err := optFloat(pa, "plane", "emissive", defaultEmissive)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{
			shape: geometry.NewPlane(point, normal, emissive),
			kind:  "plane",
		}, nil
	})

	// -----------------------------------------------------------------------
	// (capsule :from (vec 100 300) :to (vec 220 260) :radius 18)
	// -----------------------------------------------------------------------
	env.AddFunction("capsule", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("capsule", "from", "to", "radius", "emissive"); err != nil {
			return zygo.SexpNull, err
		}

		from, err := requireVec(pa, "capsule", "from")
		if err != nil {
			return zygo.SexpNull, err
		}
		to, err := requireVec(pa, "capsule", "to")
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := requireFloat(pa, "capsule", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		emissive, err := optFloat(pa, "capsule", "emissive", defaultEmissive)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{
			shape: geometry.NewCapsule(from, to, radius, emissive),
			kind:  "capsule",
		}, nil
	})

	// -----------------------------------------------------------------------
	// (rect :center (vec 256 140) :theta 0.5 :half-width 60 :half-height 30)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("rect", "center", "half-width", "half-height", "theta", "emissive"); err != nil {
			return zygo.SexpNull, err
		}

		center, err := requireVec(pa, "rect", "center")
		if err != nil {
			return zygo.SexpNull, err
		}
		halfWidth, err := requireFloat(pa, "rect", "half-width")
		if err != nil {
			return zygo.SexpNull, err
		}
		halfHeight, err := requireFloat(pa, "rect", "half-height")
		if err != nil {
			return zygo.SexpNull, err
		}
		theta, err := optFloat(pa, "rect", "theta", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		emissive, err := optFloat(pa, "rect", "emissive", defaultEmissive)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{
			shape: geometry.NewRect(center, theta, halfWidth, halfHeight, emissive),
			kind:  "rect",
		}, nil
	})

	// -----------------------------------------------------------------------
	// (triangle :a (vec 340 300) :b (vec 450 320) :c (vec 390 220))
	// -----------------------------------------------------------------------
	env.AddFunction("triangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("triangle", "a", "b", "c", "emissive"); err != nil {
			return zygo.SexpNull, err
		}

		a, err := requireVec(pa, "triangle", "a")
		if err != nil {
			return zygo.SexpNull, err
		}
		b, err := requireVec(pa, "triangle", "b")
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := requireVec(pa, "triangle", "c")
		if err != nil {
			return zygo.SexpNull, err
		}
		emissive, err := optFloat(pa, "triangle", "emissive", defaultEmissive)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{
			shape: geometry.NewTriangle(a, b, c, emissive),
			kind:  "triangle",
		}, nil
	})

	// -----------------------------------------------------------------------
	// (union s1 s2 ...) / (intersect s1 s2 ...) / (subtract s1 s2 ...)
	//
	// Two or more shapes fold left to right into a binary tree.
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return combine("union", args, geometry.Union)
	})
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return combine("intersect", args, geometry.Intersect)
	})
	env.AddFunction("subtract", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return combine("subtract", args, geometry.Subtract)
	})

	// -----------------------------------------------------------------------
	// (round shape 12)
	// -----------------------------------------------------------------------
	env.AddFunction("round", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("round requires a shape and a radius, got %d arguments", len(args))
		}
		s, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("round: shape: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("round: radius: %w", err)
		}
		return &sexpShape{shape: geometry.Round(s, r), kind: "round"}, nil
	})

	// -----------------------------------------------------------------------
	// (scene :width 512 :height 384 :samples 64 :max-steps 10 root)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("scene", "width", "height", "samples", "max-steps"); err != nil {
			return zygo.SexpNull, err
		}

		if doc.Root != nil {
			return zygo.SexpNull, fmt.Errorf("scene: already defined")
		}
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("scene: want exactly one root shape, got %d", len(pa.positional))
		}
		root, err := toShape(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: root: %w", err)
		}

		if err := optInt(pa, "scene", "width", &doc.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := optInt(pa, "scene", "height", &doc.Height); err != nil {
			return zygo.SexpNull, err
		}
		if err := optInt(pa, "scene", "samples", &doc.SampleCount); err != nil {
			return zygo.SexpNull, err
		}
		if err := optInt(pa, "scene", "max-steps", &doc.MaxStep); err != nil {
			return zygo.SexpNull, err
		}
		doc.Root = root

		return pa.positional[0], nil
	})
}
