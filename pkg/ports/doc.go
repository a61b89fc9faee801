/*
Package ports defines the driven ports (interfaces) for the pushdown engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various definition sources and run stores.

# Key Interfaces

  - DefinitionLoader: Retrieves validated automaton definitions (e.g., from Loam, a file or memory).
  - RunStore: Persists finished runs so they can be inspected later.
  - Executor: The facade surface used by transport adapters (HTTP, MCP).
*/
package ports
