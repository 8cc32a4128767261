// Package bench — definition model, parameter expansion, command building.
package bench

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for batch definitions.
var (
	// ErrBadDefinition indicates a definition without sets or batches.
	ErrBadDefinition = errors.New("bench: definition needs sets and batches")

	// ErrBadExpansion indicates variable expansion on an unsupported kind.
	ErrBadExpansion = errors.New("bench: cannot expand variables in value")
)

// Set is one named problem set: a file-glob path (optional) and how many
// times each batch runs over it.
type Set struct {
	Path       string `yaml:"path"`
	Iterations int    `yaml:"iterations"`
}

// Batch is one named command batch: the subcommand, its option lists, and
// the working directory template.
type Batch struct {
	Command        string            `yaml:"command"`
	CurrentDir     string            `yaml:"current_dir"`
	GlobalOptions  map[string]string `yaml:"global_options"`
	CommandOptions map[string]any    `yaml:"command_options"`
}

// Definition is a whole benchmark description.
type Definition struct {
	Sets          map[string]Set    `yaml:"sets"`
	Batches       map[string]Batch  `yaml:"batches"`
	GlobalOptions map[string]string `yaml:"global_options"`
}

// ParseDefinition decodes a YAML benchmark definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	if len(def.Sets) == 0 || len(def.Batches) == 0 {
		return nil, ErrBadDefinition
	}

	return &def, nil
}

// LoadDefinition reads and decodes a YAML benchmark definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}

	return ParseDefinition(data)
}

// RegularizeParameters normalizes parameter values so that every leaf is a
// list of strings: scalars become one-element lists, lists are stringified
// element-wise, nested maps recurse.
func RegularizeParameters(params map[string]any) map[string]any {
	regular := make(map[string]any, len(params))
	for key, value := range params {
		switch v := value.(type) {
		case []any:
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = stringify(item)
			}
			regular[key] = items
		case []string:
			regular[key] = append([]string(nil), v...)
		case string:
			regular[key] = []string{v}
		case map[string]any:
			regular[key] = RegularizeParameters(v)
		default:
			regular[key] = []string{stringify(v)}
		}
	}

	return regular
}

// stringify renders a scalar the way it appeared in YAML.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ParameterConfigurations expands a (regularized) parameter map into the
// cartesian product of its value lists: one map per combination, value
// order preserved per key, keys iterated in sorted order for determinism.
// Nested sub-parameter maps expand recursively; their combinations are the
// values of that key.
func ParameterConfigurations(params map[string]any) []map[string]any {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	combos := []map[string]any{{}}
	for _, key := range keys {
		var values []any
		switch v := params[key].(type) {
		case []string:
			for _, item := range v {
				values = append(values, item)
			}
		case []any:
			values = v
		case map[string]any:
			for _, sub := range ParameterConfigurations(v) {
				values = append(values, sub)
			}
		default:
			values = []any{v}
		}

		next := make([]map[string]any, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, value := range values {
				extended := make(map[string]any, len(combo)+1)
				for k, cv := range combo {
					extended[k] = cv
				}
				extended[key] = value
				next = append(next, extended)
			}
		}
		combos = next
	}

	return combos
}

// BuildOptionString renders one "--name value" CLI fragment; an empty
// value renders a bare flag.
func BuildOptionString(name, value string) string {
	if value == "" {
		return "--" + name
	}

	return fmt.Sprintf("--%s %s", name, value)
}

// BuildOptionsForParameters renders a combination as CLI fragments, keys
// sorted; sub-parameter maps render as "--key sub:value" pairs.
func BuildOptionsForParameters(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		switch v := params[key].(type) {
		case map[string]any:
			subKeys := make([]string, 0, len(v))
			for sub := range v {
				subKeys = append(subKeys, sub)
			}
			sort.Strings(subKeys)
			for _, sub := range subKeys {
				parts = append(parts, BuildOptionString(key, fmt.Sprintf("%s:%v", sub, v[sub])))
			}
		default:
			parts = append(parts, BuildOptionString(key, fmt.Sprint(v)))
		}
	}

	return strings.Join(parts, " ")
}

// ExpandVariables substitutes {placeholder} occurrences from the context
// in a string, element-wise in a list, or value-wise in a map. Unknown
// kinds are ErrBadExpansion; nil expands to the empty string.
func ExpandVariables(toExpand any, context map[string]string) (any, error) {
	switch v := toExpand.(type) {
	case nil:
		return "", nil
	case string:
		return expandString(v, context), nil
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = expandString(item, context)
		}

		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			expanded, err := ExpandVariables(item, context)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}

		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			expanded, err := ExpandVariables(item, context)
			if err != nil {
				return nil, err
			}
			out[key] = expanded
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadExpansion, toExpand)
	}
}

// expandString replaces every {key} with the context value.
func expandString(s string, context map[string]string) string {
	for key, value := range context {
		s = strings.ReplaceAll(s, "{"+key+"}", value)
	}

	return s
}

// Command is one fully expanded command line and the directory to run it
// in ("" for the current one).
type Command struct {
	Dir  string
	Line string
}

// Commands enumerates every command a runner would execute for this
// definition: sets × iterations × batches × parameter combinations, all
// in sorted order for reproducibility. Nothing is executed.
func (d *Definition) Commands(program string) ([]Command, error) {
	setNames := make([]string, 0, len(d.Sets))
	for name := range d.Sets {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)
	batchNames := make([]string, 0, len(d.Batches))
	for name := range d.Batches {
		batchNames = append(batchNames, name)
	}
	sort.Strings(batchNames)

	var commands []Command
	for _, setName := range setNames {
		set := d.Sets[setName]
		iterations := set.Iterations
		if iterations <= 0 {
			iterations = 1
		}
		for iteration := 0; iteration < iterations; iteration++ {
			for _, batchName := range batchNames {
				batch := d.Batches[batchName]
				context := map[string]string{
					"set":       setName,
					"iteration": strconv.Itoa(iteration),
					"batch":     batchName,
				}
				batchCommands, err := d.batchCommands(program, batch, context, set.Path)
				if err != nil {
					return nil, err
				}
				commands = append(commands, batchCommands...)
			}
		}
	}

	return commands, nil
}

// batchCommands expands one batch under one context.
func (d *Definition) batchCommands(program string, batch Batch, context map[string]string, files string) ([]Command, error) {
	globals := make(map[string]string, len(d.GlobalOptions)+len(batch.GlobalOptions))
	for key, value := range d.GlobalOptions {
		globals[key] = value
	}
	for key, value := range batch.GlobalOptions {
		globals[key] = value
	}
	for key, value := range globals {
		context[key] = value
	}

	var commands []Command
	for _, combo := range ParameterConfigurations(RegularizeParameters(batch.CommandOptions)) {
		ctx := make(map[string]string, len(context)+len(combo))
		for key, value := range context {
			ctx[key] = value
		}
		for key, value := range combo {
			if s, ok := value.(string); ok {
				ctx[key] = s
			}
		}

		parts := []string{program}
		globalKeys := make([]string, 0, len(globals))
		for key := range globals {
			globalKeys = append(globalKeys, key)
		}
		sort.Strings(globalKeys)
		for _, key := range globalKeys {
			parts = append(parts, BuildOptionString(key, expandString(globals[key], ctx)))
		}
		parts = append(parts, batch.Command)
		if options := BuildOptionsForParameters(combo); options != "" {
			parts = append(parts, expandString(options, ctx))
		}
		if files != "" {
			parts = append(parts, expandString(files, ctx))
		}

		commands = append(commands, Command{
			Dir:  expandString(batch.CurrentDir, ctx),
			Line: strings.Join(parts, " "),
		})
	}

	return commands, nil
}
