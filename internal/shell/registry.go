package shell

import "context"

// Action runs a command with the arguments that followed its name.
type Action func(ctx context.Context, args []string) error

// DefaultCategory groups commands registered without a category.
const DefaultCategory = "Other"

// Command is a named handler known to the shell.
type Command struct {
	Name        string
	Description string
	Category    string
	Action      Action
}

// Registry is an insertion-ordered set of commands keyed by name.
type Registry struct {
	order []string
	cmds  map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds cmd, replacing any command with the same name. A replaced
// command keeps its original position.
func (r *Registry) Register(cmd Command) {
	if _, ok := r.cmds[cmd.Name]; !ok {
		r.order = append(r.order, cmd.Name)
	}
	r.cmds[cmd.Name] = cmd
}

func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

func (r *Registry) Len() int { return len(r.order) }

// Names returns command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Group is a category and its commands, in registration order.
type Group struct {
	Category string
	Commands []Command
}

// Groups buckets commands by category. Categories appear in the order they
// were first seen.
func (r *Registry) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, name := range r.order {
		cmd := r.cmds[name]
		cat := cmd.Category
		if cat == "" {
			cat = DefaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Commands = append(groups[i].Commands, cmd)
	}
	return groups
}
