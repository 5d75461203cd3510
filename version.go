package actionserver

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/aretw0/actionserver.Version=...".
var Version = "0.1.0"
