package executor

import (
	"testing"

	"github.com/aretw0/actionserver/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveParams_FiltersUndeclaredKwargs(t *testing.T) {
	desc := &domain.Description{Kwargs: []domain.KwargSpec{{Name: "test_kwarg1"}}}

	args, kwargs := ResolveParams(desc, []any{"a", "b"}, map[string]any{"domain": "x"})

	assert.Equal(t, []any{"a", "b"}, args)
	assert.Equal(t, map[string]any{}, kwargs)
}

func TestResolveParams_KeepsDeclaredKwargs(t *testing.T) {
	desc := &domain.Description{Kwargs: []domain.KwargSpec{{Name: "test_kwarg1"}, {Name: "test_kwarg2"}}}
	in := map[string]any{"test_kwarg1": 3, "Test_kwarg2": true, "extra": "drop"}

	_, kwargs := ResolveParams(desc, nil, in)

	assert.Equal(t, map[string]any{"test_kwarg1": 3}, kwargs)
	assert.Len(t, in, 3, "input must not be mutated")
}

func TestResolveParams_Idempotent(t *testing.T) {
	desc := &domain.Description{Kwargs: []domain.KwargSpec{{Name: "k"}}}
	args1, kwargs1 := ResolveParams(desc, []any{1}, map[string]any{"k": "v", "z": 1})
	args2, kwargs2 := ResolveParams(desc, args1, kwargs1)

	assert.Equal(t, args1, args2)
	assert.Equal(t, kwargs1, kwargs2)
}

func TestResolveParams_NoSchemaPassesThrough(t *testing.T) {
	args, kwargs := ResolveParams(nil, []any{"a", "b"}, map[string]any{"k": "v"})

	assert.Equal(t, []any{"a", "b"}, args)
	assert.Equal(t, map[string]any{"k": "v"}, kwargs)
}

func TestResolveParams_DropsReservedEvenWithoutSchema(t *testing.T) {
	in := map[string]any{"tracker": 1, "dispatcher": 2, "domain": 3, "k": "v"}

	_, kwargs := ResolveParams(&domain.Description{Text: "only text"}, nil, in)

	assert.Equal(t, map[string]any{"k": "v"}, kwargs)
}

func TestResolveParams_DropsReservedEvenWhenDeclared(t *testing.T) {
	desc := &domain.Description{Kwargs: []domain.KwargSpec{{Name: "domain"}}}

	_, kwargs := ResolveParams(desc, nil, map[string]any{"domain": "x"})

	assert.Empty(t, kwargs)
}

func TestResolveParams_ArgsIgnoreDeclaredArity(t *testing.T) {
	desc := &domain.Description{Args: []domain.ArgSpec{{Type: "str"}}}

	args, _ := ResolveParams(desc, []any{"a", "b", "c"}, nil)
	assert.Equal(t, []any{"a", "b", "c"}, args)

	args, _ = ResolveParams(desc, nil, nil)
	assert.Equal(t, []any{}, args)
}

func TestResolveParams_NilInputs(t *testing.T) {
	args, kwargs := ResolveParams(nil, nil, nil)

	assert.NotNil(t, args)
	assert.Empty(t, args)
	assert.NotNil(t, kwargs)
	assert.Empty(t, kwargs)
}
