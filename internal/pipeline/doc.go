// Package pipeline runs the plugins of one site build in registration order.
//
// The runner is fail-fast: the first plugin error stops the build, later
// plugins never execute, and the error is returned wrapped in a
// *plugin.PluginError without being altered or retried.
package pipeline
