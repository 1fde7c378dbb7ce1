// Package ollama provides an HTTP client for a locally hosted Ollama server.
//
// # Overview
//
// The client is the model backend of paa. It turns a conversation transcript
// into a single non-streaming /api/chat request and returns the assistant's
// reply text.
//
// # Client Usage
//
//	client, err := ollama.NewClient(ollama.Options{
//		BaseURL: "127.0.0.1:11434",
//		Model:   "llama3.2",
//	})
//	if err != nil {
//		return err
//	}
//	reply, err := client.Generate(ctx, log.Context())
//
// # API Endpoints
//
//   - POST /api/chat: Generate and Chat
//   - GET /api/version: Ping, used as a reachability probe at startup
//
// # Error Handling
//
// Every failure that reaches the server, or fails to, is a *ClientError with
// an ErrorType. ClientError implements Is by type, so callers match with the
// sentinels:
//
//	if errors.Is(err, ollama.ErrNotRunning) {
//		// start ollama serve
//	}
//
// Transport failures are classified as canceled (caller context canceled),
// timeout (deadline exceeded) or not running (anything else, typically
// connection refused). A 404 maps to ErrModelNotFound; other 4xx/5xx statuses
// and undecodable bodies map to ErrInvalidResponse. When the server includes
// an {"error": "..."} body its text becomes the error message.
//
// # Retries
//
// The client never retries. A failed request is reported once and the caller
// decides what to show.
package ollama
