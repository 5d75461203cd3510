/*
Package executor resolves and runs actions for a single dispatch request.

A dispatch goes through five steps:

  - Resolve action: the requested name may be an alias declared in the request's
    domain under "actions_params"; the alias names a base action and fixed params.
  - Resolve params: params are filtered against the handler's declared kwargs.
    Simple (non-parameterized) handlers never receive params.
  - Invoke: the handler runs on its own goroutine; its error or panic is captured.
  - Normalize: events and response messages are returned in emission order.
  - Respond: the caller maps the result or the typed error to its transport.
*/
package executor
