// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"embed"
	"os"

	"github.com/flosch/pongo2/v6"

	"grimm.is/constructdoc/internal/errors"
)

//go:embed templates/*.j2
var templateFS embed.FS

// DefaultTemplate is the embedded template path.
const DefaultTemplate = "templates/construct.md.j2"

// environExample is printed literally in the intro prose; it is passed as a
// value so the engine never tries to evaluate it.
const environExample = `{{ environ["VERSION"] }}`

// RenderOption configures a Renderer.
type RenderOption func(*renderConfig)

type renderConfig struct {
	path   string
	source []byte
}

// WithTemplateFile renders with a template read from disk instead of the
// embedded one.
func WithTemplateFile(path string) RenderOption {
	return func(cfg *renderConfig) {
		if path != "" {
			cfg.path = path
			cfg.source = nil
		}
	}
}

// WithTemplateString renders with the given template source.
func WithTemplateString(src string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.path = ""
		cfg.source = []byte(src)
	}
}

// Renderer binds Metadata into the document template.
type Renderer struct {
	tpl *pongo2.Template
}

// NewRenderer parses the template once; rendering can then be repeated.
func NewRenderer(opts ...RenderOption) (*Renderer, error) {
	cfg := &renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	src := cfg.source
	switch {
	case src != nil:
	case cfg.path != "":
		data, err := os.ReadFile(cfg.path)
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindNotFound, "read template"), "path", cfg.path)
		}
		src = data
	default:
		data, err := templateFS.ReadFile(DefaultTemplate)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "read embedded template")
		}
		src = data
	}

	// Whitespace is controlled by {%- -%} markers in the template. Leave the
	// set's TrimBlocks/LStripBlocks off: they mutate the template on first Execute.
	set := pongo2.NewSet("constructdoc", pongo2.NewFSLoader(templateFS))

	tpl, err := set.FromBytes(src)
	if err != nil {
		err = errors.Wrap(err, errors.KindTemplate, "parse template")
		if cfg.path != "" {
			err = errors.Attr(err, "path", cfg.path)
		}
		return nil, err
	}

	return &Renderer{tpl: tpl}, nil
}

// Render produces the document. Selector names are sorted here regardless of
// how the map was built; empty sections render as a bare heading.
func (r *Renderer) Render(meta *Metadata) (string, error) {
	if meta == nil {
		meta = &Metadata{}
	}

	out, err := r.tpl.Execute(templateContext(meta))
	if err != nil {
		return "", errors.Wrap(err, errors.KindTemplate, "render template")
	}
	return out, nil
}

func templateContext(meta *Metadata) pongo2.Context {
	fields := meta.Fields
	if fields == nil {
		fields = []FieldDescriptor{}
	}

	return pongo2.Context{
		"platform":              meta.Platform,
		"keys":                  fields,
		"selectors":             meta.Selectors.Keys(),
		"supported_platforms":   nonNil(meta.Platforms.Supported),
		"unsupported_platforms": nonNil(meta.Platforms.Unsupported),
		"environ_example":       environExample,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
