// Package config loads paa's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/paa/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/paa/config.toml
//   - Ollama endpoint: http://127.0.0.1:11434
//   - Model: llama3.2
//   - Request timeout: 2m
//   - Log file: ~/.local/state/paa/paa.log
//
// # TOML Format
//
//	ollama_url = "127.0.0.1:11434"
//	model = "qwen2.5-coder:7b"
//	system_prompt = "You are a helpful assistant. Answer briefly."
//	request_timeout = "90s"
//	log_file = "~/.local/state/paa/paa.log"
//
// Every field is optional. request_timeout is a Go duration string and must be
// positive. Tilde expansion is performed for log_file and the config path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and invalid durations. A missing file is
// not an error, so paa works out of the box against a default Ollama install.
//
// Command-line flags in cmd/paa override the loaded values.
package config
