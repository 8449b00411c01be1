package snippet

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Definition is a single static snippet: a trigger prefix, a templated
// body with ordered placeholder tokens, and a description.
type Definition struct {
	Prefix      string
	Body        string
	Description string
}

// Builtin returns the built-in snippet definitions.
func Builtin() []Definition {
	return []Definition{
		{
			Prefix:      "for",
			Body:        "for (var ${1:index} = 0; ${1:index} < ${2:array}.length; ${1:index}++) {\n\t$0\n}",
			Description: "For Loop",
		},
		{
			Prefix:      "if",
			Body:        "if (${1:condition}) {\n\t$0\n}",
			Description: "If Statement",
		},
		{
			Prefix:      "while",
			Body:        "while (${1:condition}) {\n\t$0\n}",
			Description: "While Statement",
		},
	}
}

// Table is an immutable prefix-indexed snippet collection. It is built
// once at startup and shared read-only between adapter operations.
type Table struct {
	defs     []Definition
	byPrefix map[string]Definition
}

// NewTable builds a table from a list of definitions. Later
// definitions never override earlier ones, so built-ins win over user
// snippets with the same prefix.
func NewTable(defs []Definition) *Table {
	t := &Table{
		defs:     make([]Definition, 0, len(defs)),
		byPrefix: make(map[string]Definition, len(defs)),
	}
	for _, def := range defs {
		if _, ok := t.byPrefix[def.Prefix]; ok {
			continue
		}
		t.defs = append(t.defs, def)
		t.byPrefix[def.Prefix] = def
	}
	return t
}

// All returns the definitions in table order.
func (t *Table) All() []Definition {
	return t.defs
}

// Lookup finds a definition by exact prefix equality.
func (t *Table) Lookup(prefix string) (Definition, bool) {
	def, ok := t.byPrefix[prefix]
	return def, ok
}

// LoadFile reads user snippet definitions from a JSON file shaped like
//
//	{"repeat": {"body": "...", "description": "..."}}
//
// A missing file is not an error; the built-ins stand alone.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snippet file: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("snippet file %s is not valid JSON", path)
	}

	var defs []Definition
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		body := value.Get("body").String()
		if body == "" {
			return true
		}
		defs = append(defs, Definition{
			Prefix:      key.String(),
			Body:        body,
			Description: value.Get("description").String(),
		})
		return true
	})

	return defs, nil
}

// LoadTable builds the process-wide snippet table from the built-ins
// plus an optional user file.
func LoadTable(userPath string) (*Table, error) {
	defs := Builtin()
	if userPath != "" {
		userDefs, err := LoadFile(userPath)
		if err != nil {
			return nil, err
		}
		defs = append(defs, userDefs...)
	}
	return NewTable(defs), nil
}
