// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Transport]: request/response exchange against the orchestration server
//   - [ChecksumStore]: persists the last installed firmware checksum
//   - [ArtifactStore]: writes downloaded programs and firmware bundles
//   - [Executor]: runs a downloaded program and reports its exit code
//   - [Sleeper]: waits between retries, honoring cancellation
//   - [BatteryGauge]: reports the battery level sent with every envelope
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them.
package ports
