// Package darwin provides the macOS accessibility backend: trust checks,
// running application lookup, AXObserver registration and the main run loop.
// Everything except the application shell requires CGo (Objective-C
// frameworks). When CGo is disabled, no provider is registered.
package darwin
