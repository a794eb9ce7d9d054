package types

// Command is one client-side gtag call: a command name, positional arguments
// and an optional trailing fields object.
type Command struct {
	Name   string
	Fields *Fields
	Args   []any
}

// Wire returns the argument list as the client receives it:
// [name, args..., fields]. The fields object is omitted when empty.
func (c Command) Wire() []any {
	out := make([]any, 0, len(c.Args)+2)
	out = append(out, c.Name)
	out = append(out, c.Args...)
	if c.Fields.Len() > 0 {
		out = append(out, c.Fields)
	}
	return out
}

// Clone returns a copy that shares no mutable state with c.
func (c Command) Clone() Command {
	out := Command{Name: c.Name}
	if c.Fields != nil {
		out.Fields = c.Fields.Clone()
	}
	if c.Args != nil {
		out.Args = append([]any(nil), c.Args...)
	}
	return out
}
