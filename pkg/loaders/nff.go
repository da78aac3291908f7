package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/geometry"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
	"github.com/hippopotamus-prime/go-raytracer/pkg/scene"
)

// Options controls how surfaces read from a scene description become
// materials.
type Options struct {
	// BlinnPhong selects the halfway-vector specular model instead of the
	// reflected-vector model.
	BlinnPhong bool
}

// nffParser tracks parsing state for a single NFF stream. Multi-line
// entities (viewpoint blocks, cones, polygons) pull continuation lines
// through the same scanner so line numbers in errors stay accurate.
type nffParser struct {
	scanner *bufio.Scanner
	line    int
	opts    Options
	scene   *scene.Scene
	fill    material.Material // current surface, nil until the first f
	hasView bool
}

// ParseNFF parses a scene in Neutral File Format from an io.Reader.
// Unknown directives and malformed entities are errors: a scene that did
// not parse completely would silently render wrong.
func ParseNFF(reader io.Reader, opts Options) (*scene.Scene, error) {
	parser := &nffParser{
		scanner: bufio.NewScanner(reader),
		opts:    opts,
		scene:   scene.NewScene(),
	}
	if err := parser.parse(); err != nil {
		return nil, err
	}
	return parser.scene, nil
}

// LoadNFF loads and parses an NFF scene file.
func LoadNFF(filename string, opts Options) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open NFF file: %v", err)
	}
	defer file.Close()

	return ParseNFF(file, opts)
}

func (p *nffParser) parse() error {
	for {
		line, ok := p.nextLine()
		if !ok {
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		directive, args := fields[0], fields[1:]
		var err error
		switch directive {
		case "v":
			err = p.parseViewpoint(args)
		case "b":
			err = p.parseBackground(args)
		case "l":
			err = p.parseLight(args)
		case "f":
			err = p.parseFill(args)
		case "s":
			err = p.parseSphere(args)
		case "c":
			err = p.parseCone(args)
		case "p":
			err = p.parsePolygon(args, false)
		case "pp":
			err = p.parsePolygon(args, true)
		default:
			err = p.errorf("unknown directive %q", directive)
		}
		if err != nil {
			return err
		}
	}

	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %v", err)
	}
	if !p.hasView {
		return fmt.Errorf("scene has no viewpoint (v) entity")
	}
	return nil
}

// nextLine advances to the next input line, keeping the line counter in
// step
func (p *nffParser) nextLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.line++
	return p.scanner.Text(), true
}

func (p *nffParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

// parseViewpoint reads the six named sub-lines of a v block. They may
// appear in any order but all of them must be present.
func (p *nffParser) parseViewpoint(args []string) error {
	if len(args) != 0 {
		return p.errorf("v: unexpected arguments %v", args)
	}

	var view scene.View
	required := []string{"from", "at", "up", "angle", "hither", "resolution"}
	seen := make(map[string]bool, len(required))

	for len(seen) < len(required) {
		line, ok := p.nextLine()
		if !ok {
			var missing []string
			for _, name := range required {
				if !seen[name] {
					missing = append(missing, name)
				}
			}
			return fmt.Errorf("line %d: v: viewpoint block ended before %s", p.line, strings.Join(missing, ", "))
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		keyword, params := fields[0], fields[1:]
		switch keyword {
		case "from", "at", "up":
			values, err := parseFloats(params, 3)
			if err != nil {
				return p.errorf("v %s: %v", keyword, err)
			}
			v := core.NewVec3(values[0], values[1], values[2])
			switch keyword {
			case "from":
				view.From = v
			case "at":
				view.At = v
			case "up":
				view.Up = v
			}
		case "angle":
			values, err := parseFloats(params, 1)
			if err != nil {
				return p.errorf("v angle: %v", err)
			}
			view.Angle = values[0]
		case "hither":
			values, err := parseFloats(params, 1)
			if err != nil {
				return p.errorf("v hither: %v", err)
			}
			view.Hither = values[0]
		case "resolution":
			if len(params) != 2 {
				return p.errorf("v resolution: expected 2 values, got %d", len(params))
			}
			width, errW := strconv.Atoi(params[0])
			height, errH := strconv.Atoi(params[1])
			if errW != nil || errH != nil {
				return p.errorf("v resolution: invalid values %v", params)
			}
			view.Width = width
			view.Height = height
		default:
			return p.errorf("v: unexpected %q inside viewpoint block", keyword)
		}
		seen[keyword] = true
	}

	if err := view.Validate(); err != nil {
		return p.errorf("v: %v", err)
	}
	p.scene.View = view
	p.hasView = true
	return nil
}

func (p *nffParser) parseBackground(args []string) error {
	values, err := parseFloats(args, 3)
	if err != nil {
		return p.errorf("b: %v", err)
	}
	p.scene.Background = core.NewVec3(values[0], values[1], values[2])
	return nil
}

// parseLight reads a positional light with an optional color; lights
// default to white and are not attenuated by distance.
func (p *nffParser) parseLight(args []string) error {
	if len(args) != 3 && len(args) != 6 {
		return p.errorf("l: expected 3 or 6 values, got %d", len(args))
	}

	values, err := parseFloats(args, len(args))
	if err != nil {
		return p.errorf("l: %v", err)
	}

	light := scene.Light{
		Position: core.NewVec3(values[0], values[1], values[2]),
		Color:    core.NewVec3(1, 1, 1),
	}
	if len(values) == 6 {
		light.Color = core.NewVec3(values[3], values[4], values[5])
	}
	p.scene.AddLight(light)
	return nil
}

// parseFill sets the surface applied to every shape that follows. The
// long form carries an explicit ambient coefficient:
//
//	f  r g b  Ka Kd Ks shine T ior
//
// The classic 8-value form omits Ka, which then defaults to 0.1.
func (p *nffParser) parseFill(args []string) error {
	if len(args) != 8 && len(args) != 9 {
		return p.errorf("f: expected 8 or 9 values, got %d", len(args))
	}

	values, err := parseFloats(args, len(args))
	if err != nil {
		return p.errorf("f: %v", err)
	}

	fill := material.Fill{
		Color:   core.NewVec3(values[0], values[1], values[2]),
		Ambient: 0.1,
	}
	rest := values[3:]
	if len(values) == 9 {
		fill.Ambient = values[3]
		rest = values[4:]
	}
	fill.Diffuse = rest[0]
	fill.Specular = rest[1]
	fill.Shine = rest[2]
	fill.Transmissivity = rest[3]
	fill.RefractiveIndex = rest[4]

	// Specular reflectance doubles as mirror reflectivity
	fill.Reflectivity = fill.Specular

	if err := fill.Validate(); err != nil {
		return p.errorf("f: %v", err)
	}

	if p.opts.BlinnPhong {
		p.fill = material.NewBlinnPhong(fill)
	} else {
		p.fill = material.NewPhong(fill)
	}
	return nil
}

// currentFill returns the active surface or an error if no f entity has
// appeared yet
func (p *nffParser) currentFill(directive string) (material.Material, error) {
	if p.fill == nil {
		return nil, p.errorf("%s: shape defined before any fill (f) entity", directive)
	}
	return p.fill, nil
}

func (p *nffParser) parseSphere(args []string) error {
	fill, err := p.currentFill("s")
	if err != nil {
		return err
	}

	values, err := parseFloats(args, 4)
	if err != nil {
		return p.errorf("s: %v", err)
	}

	sphere, err := geometry.NewSphere(core.NewVec3(values[0], values[1], values[2]), values[3], fill)
	if err != nil {
		return p.errorf("s: %v", err)
	}
	p.scene.AddShape(sphere)
	return nil
}

// parseCone reads a cone or cylinder. The eight values may sit on the
// directive line or on two continuation lines of four values each:
//
//	c
//	base.x base.y base.z base_radius
//	apex.x apex.y apex.z apex_radius
//
// Equal radii make a cylinder. Otherwise the wider end is treated as the
// base, wherever it appeared.
func (p *nffParser) parseCone(args []string) error {
	fill, err := p.currentFill("c")
	if err != nil {
		return err
	}

	var values []float64
	switch len(args) {
	case 8:
		values, err = parseFloats(args, 8)
		if err != nil {
			return p.errorf("c: %v", err)
		}
	case 0:
		for i := 0; i < 2; i++ {
			fields, ok := p.nextEntityLine()
			if !ok {
				return p.errorf("c: missing base/apex line")
			}
			lineValues, err := parseFloats(fields, 4)
			if err != nil {
				return p.errorf("c: %v", err)
			}
			values = append(values, lineValues...)
		}
	default:
		return p.errorf("c: expected 0 or 8 values, got %d", len(args))
	}

	base := core.NewVec3(values[0], values[1], values[2])
	baseRadius := values[3]
	apex := core.NewVec3(values[4], values[5], values[6])
	apexRadius := values[7]

	var shape geometry.Shape
	if baseRadius == apexRadius {
		shape, err = geometry.NewCylinder(base, apex, baseRadius, fill)
	} else {
		if apexRadius > baseRadius {
			base, apex = apex, base
			baseRadius, apexRadius = apexRadius, baseRadius
		}
		shape, err = geometry.NewCone(base, baseRadius, apex, apexRadius, fill)
	}
	if err != nil {
		return p.errorf("c: %v", err)
	}
	p.scene.AddShape(shape)
	return nil
}

// parsePolygon reads a polygon (p) or polygon patch with per-vertex
// normals (pp). The directive line carries the vertex count; each vertex
// follows on its own line.
func (p *nffParser) parsePolygon(args []string, patch bool) error {
	directive := "p"
	if patch {
		directive = "pp"
	}

	fill, err := p.currentFill(directive)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return p.errorf("%s: expected a vertex count, got %v", directive, args)
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 3 {
		return p.errorf("%s: invalid vertex count %q", directive, args[0])
	}

	valuesPerLine := 3
	if patch {
		valuesPerLine = 6
	}

	vertices := make([]core.Vec3, 0, count)
	var normals []core.Vec3
	for i := 0; i < count; i++ {
		fields, ok := p.nextEntityLine()
		if !ok {
			return p.errorf("%s: expected %d vertex lines, got %d", directive, count, i)
		}
		values, err := parseFloats(fields, valuesPerLine)
		if err != nil {
			return p.errorf("%s vertex %d: %v", directive, i, err)
		}
		vertices = append(vertices, core.NewVec3(values[0], values[1], values[2]))
		if patch {
			normals = append(normals, core.NewVec3(values[3], values[4], values[5]))
		}
	}

	var polygon *geometry.Polygon
	if patch {
		polygon, err = geometry.NewPolygonPatch(vertices, normals, fill)
	} else {
		polygon, err = geometry.NewPolygon(vertices, fill)
	}
	if err != nil {
		return p.errorf("%s: %v", directive, err)
	}
	p.scene.AddShape(polygon)
	return nil
}

// nextEntityLine returns the fields of the next continuation line,
// skipping blanks and comments
func (p *nffParser) nextEntityLine() ([]string, bool) {
	for {
		line, ok := p.nextLine()
		if !ok {
			return nil, false
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		return fields, true
	}
}

// parseFloats parses exactly count finite floats.
func parseFloats(args []string, count int) ([]float64, error) {
	if len(args) != count {
		return nil, fmt.Errorf("expected %d values, got %d", count, len(args))
	}

	values := make([]float64, count)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite number %q", arg)
		}
		values[i] = v
	}
	return values, nil
}
