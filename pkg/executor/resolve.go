package executor

import (
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/actionserver/pkg/domain"
)

// ActionsParamsKey is the domain key holding the alias table.
const ActionsParamsKey = "actions_params"

// Resolution is the outcome of the resolve-action step.
type Resolution struct {
	// RequestedName is the name the caller asked for.
	RequestedName string
	// ActionName is the name looked up in the registry.
	ActionName string
	Aliased    bool
	Args       []any
	Kwargs     map[string]any
}

// ResolveAction rewrites name through the alias table in dom, if it holds an
// entry for name. A table or entry that is not an object is treated as absent.
// Inside an entry each field is decoded on its own: a malformed args or kwargs
// field yields empty params, and an entry without a usable base_action keeps
// the requested name but still supplies params.
func ResolveAction(name string, dom domain.Domain) Resolution {
	res := Resolution{RequestedName: name, ActionName: name}

	params, ok := lookupAlias(name, dom)
	if !ok {
		return res
	}
	res.Aliased = true
	if params.BaseAction != "" {
		res.ActionName = params.BaseAction
	}
	res.Args = params.Args
	res.Kwargs = params.Kwargs
	return res
}

func lookupAlias(name string, dom domain.Domain) (domain.ActionParams, bool) {
	var params domain.ActionParams
	if dom == nil {
		return params, false
	}
	table, ok := dom[ActionsParamsKey].(map[string]any)
	if !ok {
		return params, false
	}
	entry, ok := table[name].(map[string]any)
	if !ok {
		return params, false
	}

	decodeField(entry["base_action"], &params.BaseAction)
	decodeField(entry["args"], &params.Args)
	decodeField(entry["kwargs"], &params.Kwargs)
	return params, true
}

// decodeField decodes raw into out, leaving out zeroed when raw is malformed.
func decodeField[T any](raw any, out *T) {
	var v T
	if raw != nil && mapstructure.Decode(raw, &v) != nil {
		var zero T
		v = zero
	}
	*out = v
}
