// Package commands defines the kalkki command-line calculator.
//
// Commands
//
//   - eval   Evaluate the expressions given as arguments, one per argument group
//   - repl   Read expressions from standard input until EOF
//
// Both share the desktop app's engine, so results match the window. Variables,
// functions and ans carry over between expressions within one invocation.
package commands
