// Package app encapsulates the application lifecycle: configuring the
// logger, loading the project, building the object graph, constructing the
// milestone engine, and rendering the accessibility report.
package app
