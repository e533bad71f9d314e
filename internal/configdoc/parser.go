// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strings"

	"grimm.is/constructdoc/internal/errors"
)

// SkipSentinel as a description hides a key from the generated document.
const SkipSentinel = "XXX"

// StructSource derives key descriptors from a Go struct definition whose
// fields carry yaml tags. Field order in the source is document order.
//
// Doc comments become descriptions. Two annotations override the inferred
// metadata and are stripped from the description:
//
//	// @required: conditionally
//	// @type: string, list
//
// Without @required, a field is required unless its tag has omitempty.
// Without @type, the type is inferred from the Go type.
type StructSource struct {
	Dir      string // package directory to parse
	TypeName string // root struct, e.g. "Spec"
}

// Fields parses Dir and returns one descriptor per tagged field of TypeName.
func (s StructSource) Fields() ([]FieldDescriptor, error) {
	st, err := s.findStruct()
	if err != nil {
		return nil, err
	}

	var fields []FieldDescriptor
	if st.Fields == nil {
		return fields, nil
	}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded field
		}
		fd, ok := parseField(field)
		if !ok {
			continue
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

func (s StructSource) findStruct() (*ast.StructType, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, s.Dir, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindCollaborator, "parse schema package"), "dir", s.Dir)
	}

	// Map iteration order is random; walk packages and files sorted.
	pkgNames := make([]string, 0, len(pkgs))
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		pkgNames = append(pkgNames, name)
	}
	sort.Strings(pkgNames)

	for _, pkgName := range pkgNames {
		pkg := pkgs[pkgName]
		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, fileName := range fileNames {
			if st := lookupStruct(pkg.Files[fileName], s.TypeName); st != nil {
				return st, nil
			}
		}
	}

	err = errors.Errorf(errors.KindNotFound, "struct %s not found", s.TypeName)
	return nil, errors.Attr(err, "dir", s.Dir)
}

func lookupStruct(file *ast.File, typeName string) *ast.StructType {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Name.Name != typeName {
				continue
			}
			if st, ok := typeSpec.Type.(*ast.StructType); ok {
				return st
			}
		}
	}
	return nil
}

// parseField converts a struct field. Fields without a yaml key, tagged "-",
// or carrying the skip sentinel are dropped.
func parseField(field *ast.Field) (FieldDescriptor, bool) {
	if field.Tag == nil {
		return FieldDescriptor{}, false
	}
	tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
	name, omitEmpty := parseYAMLTag(tag.Get("yaml"))
	if name == "" || name == "-" {
		return FieldDescriptor{}, false
	}

	doc := extractDocComment(field.Doc)
	if field.Comment != nil {
		if inline := extractDocComment(field.Comment); inline != "" {
			if doc == "" {
				doc = inline
			} else {
				doc = doc + "\n" + inline
			}
		}
	}

	ann := parseAnnotations(doc)
	description := cleanDescription(doc)
	if description == SkipSentinel {
		return FieldDescriptor{}, false
	}

	required := ann.required
	if required == "" {
		required = "yes"
		if omitEmpty {
			required = "no"
		}
	}

	types := ann.types
	if len(types) == 0 {
		types = []string{goTypeToDocType(typeToString(field.Type))}
	}

	return NewFieldDescriptor(name, required, types, description), true
}

func parseYAMLTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty
}

type fieldAnnotation struct {
	required string
	types    []string
}

func parseAnnotations(doc string) fieldAnnotation {
	var ann fieldAnnotation
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)

		// @required: conditionally
		if strings.HasPrefix(line, "@required:") {
			ann.required = strings.TrimSpace(strings.TrimPrefix(line, "@required:"))
		}

		// @type: string, list
		if strings.HasPrefix(line, "@type:") {
			for _, t := range strings.Split(strings.TrimPrefix(line, "@type:"), ",") {
				if t = strings.TrimSpace(t); t != "" {
					ann.types = append(ann.types, t)
				}
			}
		}
	}
	return ann
}

// extractDocComment extracts clean doc text from a comment group.
func extractDocComment(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// cleanDescription removes annotation lines from a description.
func cleanDescription(doc string) string {
	var clean []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			continue
		}
		clean = append(clean, line)
	}
	return strings.TrimSpace(strings.Join(clean, "\n"))
}

// typeToString converts an AST type expression to a string.
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		return "[]" + typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}

// goTypeToDocType maps Go types to the type names used in the document.
func goTypeToDocType(goType string) string {
	goType = strings.TrimPrefix(goType, "*")

	if strings.HasPrefix(goType, "[]") {
		return "list"
	}
	if strings.HasPrefix(goType, "map[") {
		return "dictionary"
	}

	switch goType {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return "number"
	case "any", "interface{}":
		return "any"
	default:
		return "dictionary"
	}
}
