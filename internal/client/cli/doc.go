// Package cli provides the interactive NafaVerse command-line client.
//
// It wires configuration, the local database, the API client, the session
// and the page router, then runs a REPL. Commands that belong to a
// member-only page (planner, tracker, learning, account) first navigate to
// that page, so a visitor without a session is sent to the login prompt.
//
// Key features:
//   - Signup / Login / Google sign-in / Logout / password recovery
//   - Goal plans, investment simulations and an offline preview
//   - Local expense tracker with budgets, summary and insights
//   - Learning videos with quizzes and progress
//   - English and Urdu messages
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
