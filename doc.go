/*
Package actionserver runs custom actions on behalf of a conversational
assistant.

A caller POSTs the name of the next action together with the conversation
tracker and the assistant domain. The server finds the registered handler,
resolves any request-scoped alias and its parameters, runs the handler and
returns the events it produced plus any response messages.

# Writing actions

Actions implement domain.Action, or domain.ParamAction when they accept
positional and keyword parameters. Packages of actions register themselves
with the catalog from init():

	package act

	func init() {
		catalog.Register("actions.act",
			domain.NewAction("action_hello", hello),
		)
	}

# Serving

	eng, err := actionserver.New(actionserver.WithActionsPackage("actions.act"))
	if err != nil {
		log.Fatal(err)
	}
	runner := actionserver.NewRunner(eng.HTTPHandler())
	log.Fatal(runner.ListenAndServe(ctx, ":5055"))

The HTTP surface is GET /health, GET /actions, POST /webhook and
GET /metrics. The same actions can be exposed as MCP tools with
Engine.MCPServer.
*/
package actionserver
