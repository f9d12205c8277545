package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Loader errors
var (
	ErrUnknownFormat   = errors.New("unknown bindings file format")
	ErrInvalidDocument = errors.New("invalid bindings document")
)

// Format is the encoding of a bindings file.
type Format uint8

const (
	// FormatYAML is chosen for .yaml and .yml files.
	FormatYAML Format = iota

	// FormatTOML is chosen for .toml files.
	FormatTOML

	// FormatJSON is chosen for .json files.
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is the decoded content of a bindings file.
type Document struct {
	// Source names the file the document was read from.
	Source string

	// Bindings holds the well-formed entries in file order.
	Bindings []Binding

	// Problems holds entries that were rejected. A document with problems
	// still carries its valid bindings.
	Problems []*BindingError
}

// Err returns the problems joined into one error, or nil.
func (d *Document) Err() error {
	return JoinErrors(d.Problems)
}

// bindingConfig is the on-disk shape of a single binding.
type bindingConfig struct {
	Keys    string `yaml:"keys" toml:"keys"`
	On      string `yaml:"on" toml:"on"`
	Spawn   any    `yaml:"spawn" toml:"spawn"`
	Mapping any    `yaml:"mapping" toml:"mapping"`
	Noop    bool   `yaml:"noop" toml:"noop"`
}

// Loader reads bindings files.
type Loader struct {
	readFile func(string) ([]byte, error)
}

// NewLoader creates a loader that reads from the local file system.
func NewLoader() *Loader {
	return &Loader{readFile: os.ReadFile}
}

// LoadFile reads and decodes the bindings file at path. The format is
// chosen by extension.
func (l *Loader) LoadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings file: %w", err)
	}
	return l.Load(data, format, path)
}

// LoadReader reads r to the end and decodes it in the given format.
func (l *Loader) LoadReader(r io.Reader, format Format, source string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}
	return l.Load(data, format, source)
}

// Load decodes data in the given format. Source is used to locate
// bindings in error messages.
//
// An error is returned only when the document as a whole cannot be
// decoded. Malformed entries are collected in Document.Problems.
func (l *Loader) Load(data []byte, format Format, source string) (*Document, error) {
	switch format {
	case FormatYAML:
		return l.loadYAML(data, source)
	case FormatTOML:
		return l.loadTOML(data, source)
	case FormatJSON:
		return l.loadJSON(data, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (l *Loader) loadYAML(data []byte, source string) (*Document, error) {
	var file struct {
		Bindings []yaml.Node `yaml:"bindings"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}

	doc := &Document{Source: source}
	for _, node := range file.Bindings {
		loc := fmt.Sprintf("%s:%d", source, node.Line)
		var bc bindingConfig
		if err := node.Decode(&bc); err != nil {
			doc.Problems = append(doc.Problems, &BindingError{Source: loc, Err: err})
			continue
		}
		doc.add(bc, loc)
	}
	return doc, nil
}

func (l *Loader) loadTOML(data []byte, source string) (*Document, error) {
	var file struct {
		Bindings []bindingConfig `toml:"bindings"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: %s at line %d, column %d: %v", ErrInvalidDocument, source, row, col, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}

	doc := &Document{Source: source}
	for i, bc := range file.Bindings {
		doc.add(bc, fmt.Sprintf("%s#bindings[%d]", source, i))
	}
	return doc, nil
}

func (l *Loader) loadJSON(data []byte, source string) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: malformed JSON", ErrInvalidDocument, source)
	}

	doc := &Document{Source: source}
	list := gjson.GetBytes(data, "bindings")
	if !list.Exists() || list.Type == gjson.Null {
		return doc, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %s: bindings must be an array", ErrInvalidDocument, source)
	}

	i := 0
	list.ForEach(func(_, entry gjson.Result) bool {
		loc := fmt.Sprintf("%s#bindings[%d]", source, i)
		i++
		if !entry.IsObject() {
			doc.Problems = append(doc.Problems, &BindingError{
				Source: loc,
				Err:    fmt.Errorf("%w: binding must be an object", ErrInvalidDocument),
			})
			return true
		}
		doc.add(jsonBinding(entry), loc)
		return true
	})
	return doc, nil
}

func jsonBinding(entry gjson.Result) bindingConfig {
	bc := bindingConfig{
		Keys: entry.Get("keys").String(),
		On:   entry.Get("on").String(),
		Noop: entry.Get("noop").Bool(),
	}
	if v := entry.Get("spawn"); v.Exists() {
		bc.Spawn = v.Value()
	}
	if v := entry.Get("mapping"); v.Exists() {
		bc.Mapping = v.Value()
	}
	return bc
}

func (d *Document) add(bc bindingConfig, loc string) {
	b, err := bc.binding(loc)
	if err != nil {
		d.Problems = append(d.Problems, err)
		return
	}
	d.Bindings = append(d.Bindings, b)
}

// binding validates bc and converts it.
func (bc bindingConfig) binding(loc string) (Binding, *BindingError) {
	fail := func(err error) (Binding, *BindingError) {
		return Binding{}, &BindingError{Source: loc, Keys: bc.Keys, Err: err}
	}

	if bc.Keys == "" {
		return fail(ErrMissingKeys)
	}
	ev, err := key.ParseDirection(bc.On)
	if err != nil {
		return fail(err)
	}

	var cmds []*Command
	if bc.Spawn != nil {
		cmds = append(cmds, Spawn(bc.Spawn))
	}
	if bc.Mapping != nil {
		cmds = append(cmds, Mapping(bc.Mapping))
	}
	if bc.Noop {
		cmds = append(cmds, Noop())
	}
	switch len(cmds) {
	case 0:
		return fail(ErrNoCommand)
	case 1:
	default:
		return fail(ErrMultipleCommands)
	}

	return Binding{
		Keys:    bc.Keys,
		Event:   ev,
		Command: cmds[0],
		Source:  loc,
	}, nil
}
