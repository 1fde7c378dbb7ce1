// Package app is the composition root for paa.
//
// Run loads the configuration, applies command-line overrides, checks that
// the standard streams are a terminal, builds the zap logger and the Ollama
// client, and then blocks in ui.Run until the user quits or the context is
// cancelled.
//
// # Error Handling
//
// Fatal errors are returned to the caller:
//   - invalid configuration file
//   - stdin or stdout not attached to a terminal
//   - log file cannot be created
//   - invalid ollama_url
//
// Backend failures during a session are not fatal. They are shown in the
// transcript and the session continues. A failed startup probe only marks the
// backend offline in the title bar.
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{Model: "llama3.2"}); err != nil {
//		log.Fatalf("paa: %v", err)
//	}
package app
