package actionserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/actionserver"
	"github.com/aretw0/actionserver/pkg/catalog"
	"github.com/aretw0/actionserver/pkg/domain"
)

func hello(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	d.Utter("hello")
	return []domain.Event{domain.SlotSet("said", "hello")}, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Add("actions", domain.NewAction("action_root", hello)))
	require.NoError(t, c.Add("actions.act", domain.NewAction("action_hello", hello)))
	require.NoError(t, c.Add("other", domain.NewAction("action_other", hello)))
	return c
}

func TestNew_DiscoversPackage(t *testing.T) {
	eng, err := actionserver.New(
		actionserver.WithCatalog(testCatalog(t)),
		actionserver.WithActionsPackage("actions.act"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"action_hello"}, eng.Registry().Names())
}

func TestNew_ParentPackageIncludesChildren(t *testing.T) {
	eng, err := actionserver.New(
		actionserver.WithCatalog(testCatalog(t)),
		actionserver.WithActionsPackage("actions"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"action_root", "action_hello"}, eng.Registry().Names())
}

func TestNew_UnknownPackageFails(t *testing.T) {
	_, err := actionserver.New(
		actionserver.WithCatalog(testCatalog(t)),
		actionserver.WithActionsPackage("actions.missing"),
	)
	assert.ErrorIs(t, err, domain.ErrInvalidActionsSpecifier)
}

func TestNew_FolderPathFails(t *testing.T) {
	_, err := actionserver.New(
		actionserver.WithCatalog(testCatalog(t)),
		actionserver.WithActionsPackage("actions/act"),
	)
	assert.ErrorIs(t, err, domain.ErrInvalidActionsSpecifier)
}

func TestNew_InvalidHandlerFails(t *testing.T) {
	_, err := actionserver.New(actionserver.WithActions("not an action"))
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestNew_DirectActionsWithoutDiscovery(t *testing.T) {
	eng, err := actionserver.New(actionserver.WithActions(domain.NewAction("action_hello", hello)))
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), &domain.ActionCall{NextAction: "action_hello"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Event{domain.SlotSet("said", "hello")}, result.Events)
	assert.Equal(t, "hello", result.Responses[0].Text)
	assert.Len(t, eng.Actions(), 1)
}

func TestEngine_HTTPHandler(t *testing.T) {
	eng, err := actionserver.New(
		actionserver.WithCatalog(testCatalog(t)),
		actionserver.WithActionsPackage(""),
	)
	require.NoError(t, err)
	srv := httptest.NewServer(eng.HTTPHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/webhook", "application/json",
		strings.NewReader(`{"next_action":"action_other","tracker":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body domain.ActionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Events, 1)
}

func TestEngine_ActionTimeout(t *testing.T) {
	slow := domain.NewAction("slow", func(ctx context.Context, d *domain.CollectingDispatcher, tr domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	eng, err := actionserver.New(
		actionserver.WithActions(slow),
		actionserver.WithActionTimeout(10*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), &domain.ActionCall{NextAction: "slow"})
	assert.ErrorIs(t, err, domain.ErrActionExecution)
}

func TestEngine_MCPServer(t *testing.T) {
	eng, err := actionserver.New(actionserver.WithActions(domain.NewAction("action_hello", hello)))
	require.NoError(t, err)

	assert.NotNil(t, eng.MCPServer())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, actionserver.Version)
}
