package executor

import "github.com/aretw0/actionserver/pkg/domain"

// ReservedParams are names bound by the dispatch itself. A client-supplied
// kwarg with one of these names is always dropped.
var ReservedParams = []string{"dispatcher", "tracker", "domain"}

func isReserved(name string) bool {
	for _, r := range ReservedParams {
		if r == name {
			return true
		}
	}
	return false
}

// ResolveParams computes the args and kwargs passed to a parameterized handler.
//
// Kwargs are filtered against the declared kwarg names when desc declares any;
// otherwise every non-reserved key passes. Args pass through unfiltered; the
// declared args only document them, so surplus or missing values are the
// handler's concern.
// It never fails: unknown keys are dropped and nil inputs yield empty results.
func ResolveParams(desc *domain.Description, args []any, kwargs map[string]any) ([]any, map[string]any) {
	outArgs := make([]any, 0, len(args))
	outArgs = append(outArgs, args...)

	var allowed map[string]struct{}
	if desc != nil && desc.DeclaresKwargs() {
		allowed = desc.KwargNames()
	}

	outKwargs := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		if isReserved(k) {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[k]; !ok {
				continue
			}
		}
		outKwargs[k] = v
	}
	return outArgs, outKwargs
}
