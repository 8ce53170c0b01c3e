// Package driving defines the interfaces through which the application is
// driven: the CLI commands call these, and the core services implement them.
package driving
