// Package ports defines the interfaces (ports) that connect the fetch
// pipeline to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the pipeline needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [NameResolver]: Resolves object names to coordinates
//   - [CutoutService]: Fetches a cutout image from one survey
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces;
// concrete implementations live in internal/resolver and
// internal/adapters/httpfetch. This keeps the fallback and batching logic
// testable with in-memory fakes.
package ports
