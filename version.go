package fen

// Version is stamped at build time via -ldflags; the default marks a dev
// build.
var Version = "0.1.0-dev"
