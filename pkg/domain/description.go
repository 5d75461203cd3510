package domain

// ArgSpec documents a positional parameter.
type ArgSpec struct {
	Description string `json:"description" yaml:"description" mapstructure:"description"`
	Type        string `json:"type" yaml:"type" mapstructure:"type"`
}

// KwargSpec documents a keyword parameter.
// Declared kwarg names also act as the allow-list for client-supplied kwargs.
type KwargSpec struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`
	Type        string `json:"type" yaml:"type" mapstructure:"type"`
}

// Description is the self-reported documentation of a handler.
// It is not used to type-check incoming parameters.
type Description struct {
	Text   string      `json:"description" yaml:"description" mapstructure:"description"`
	Args   []ArgSpec   `json:"args" yaml:"args" mapstructure:"args"`
	Kwargs []KwargSpec `json:"kwargs" yaml:"kwargs" mapstructure:"kwargs"`
}

// DeclaresArgs reports whether a positional arity was declared.
func (d Description) DeclaresArgs() bool { return len(d.Args) > 0 }

// DeclaresKwargs reports whether a kwarg allow-list was declared.
func (d Description) DeclaresKwargs() bool { return len(d.Kwargs) > 0 }

// KwargNames returns the declared kwarg names as a set.
func (d Description) KwargNames() map[string]struct{} {
	names := make(map[string]struct{}, len(d.Kwargs))
	for _, kw := range d.Kwargs {
		names[kw.Name] = struct{}{}
	}
	return names
}

// Normalized returns a copy whose lists are non-nil.
func (d Description) Normalized() Description {
	out := Description{
		Text:   d.Text,
		Args:   make([]ArgSpec, len(d.Args)),
		Kwargs: make([]KwargSpec, len(d.Kwargs)),
	}
	copy(out.Args, d.Args)
	copy(out.Kwargs, d.Kwargs)
	return out
}

// ActionInfo is the external representation of a registered handler.
type ActionInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Args        []ArgSpec   `json:"args"`
	Kwargs      []KwargSpec `json:"kwargs"`
}
