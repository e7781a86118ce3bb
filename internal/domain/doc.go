// Package domain contains the core domain entities and value objects for skyview.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Target]: A single fetch target, either an object name or a coordinate pair
//   - [Coordinate]: An equatorial position in decimal degrees
//   - [Survey]: A descriptor for one remote imaging backend
//   - [FetchResult]: The per-target outcome of the fetch pipeline
//   - [Image]: A decoded cutout with pixel statistics
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
