// Package nav holds the client's page routes, the route history that stands in for browser navigation,
// and transient notifications (toasts).
//
// Views depend on the [Navigator] and [Notifier] interfaces. The TUI renders [History.Current] and
// drains the [Queue]; CLI commands use a [LogNotifier] and report the final route.
package nav
