// Package output renders command results for the terminal.
//
// Every command result has a Render* method on Renderer. Names, hosts and
// check outcomes are decorated through the style registry in pkg/style, so
// the same code produces plain text when styling is disabled. The guidance
// printed after "gim add" is a markdown template which is passed through
// glamour when the output supports it.
package output
