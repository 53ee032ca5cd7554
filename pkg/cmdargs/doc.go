// Package cmdargs implements the command-line argument assembly layer of
// the build engine: the cmd_args Starlark value, the capability contracts
// that let heterogeneous values contribute arguments, and the resolution
// algorithm that turns them into the flat string list an action executes.
//
// # Lifecycle
//
// A CommandLine is constructed mutable during rule evaluation, optionally
// extended with its add method, and frozen when its enclosing module or
// provider is frozen. Freezing is one-directional: a frozen value keeps
// full resolution capability and loses mutation capability. Resolution is
// read-only and repeatable; the same value may be resolved any number of
// times against different contexts (a dry-run preview, the real execution)
// and produces byte-identical output for identical inputs.
//
// # Capabilities
//
// Any Starlark value may contribute to a command line by implementing
// ArgLike. Literal strings are handled by the dispatcher directly; lists
// and tuples of argument-like values flatten recursively. FrozenArgLike is
// the read-only counterpart used when resolution code works over values
// held inside frozen providers.
//
// # Rendering modifiers
//
// Construction accepts four optional modifiers applied per item during
// resolution, in order: format (a template with one {} substitution point,
// applied per rendered string), delimiter (joins an item's strings into a
// single argument), prepend (a literal emitted before each resulting
// argument), and quote (shell-safety escaping, applied last).
package cmdargs
