/*
Package observability exposes Prometheus metrics for pushdown runs.

Metrics plug into the engine through domain.LifecycleHooks, so the core never
imports Prometheus. Verdicts are recorded separately with Observe, because the
acceptance decision is made after the engine halts.
*/
package observability
