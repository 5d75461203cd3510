/*
Package domain contains the core models shared by the action server.

It defines what a handler is, what it returns, and how failures are described.
This package is kept pure and free of external dependencies like I/O or
transport, following Hexagonal Architecture principles.

# Key Entities

  - Action / ParamAction: developer-supplied handlers invoked by name.
  - Event: a state mutation returned by a handler, applied by the caller.
  - Description: self-reported documentation of a handler's parameters.
  - CollectingDispatcher: collects response directives (text, templates) emitted by a handler.
  - ActionCall / ActionResult: the request and outcome of a single dispatch.
*/
package domain
