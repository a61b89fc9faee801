/*
Package pushdown is a deterministic pushdown automaton (DPDA) simulator.

A definition is a finite transition table over states, input symbols and stack
symbols. Given an input string, the engine repeatedly applies the first
transition whose state, input and stack-top requirements match, until none does,
and then decides acceptance from the final configuration.

# Concept

Definitions are data. They live as documents in a repository (Markdown with YAML
front matter, YAML or JSON) and are validated once when loaded; after that they
are immutable and shared by any number of concurrent runs. The engine holds no
per-run state. Everything around it (loaders, run stores, metrics, HTTP and MCP
transports) is an adapter behind an interface in pkg/ports.

# Semantics

  - First match wins, in declaration order. Determinism is not checked.
  - An epsilon input requirement always matches and never moves the head.
  - An epsilon stack requirement matches only an empty stack.
  - The push list replaces the top symbol; its last element becomes the new top.
  - Growing the stack past its capacity aborts the run with a stack overflow.

A halted run is accepted when the whole input was consumed and either the stack
is empty or the state is accepting.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/pushdown"
	)

	func main() {
		// Reads every automaton document under ./automata
		eng, err := pushdown.New("./automata", pushdown.WithStepLimit(10_000))
		if err != nil {
			log.Fatal(err)
		}

		result, err := eng.Run(context.Background(), "palindrome", "0110#0110")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.Verdict) // ACCEPT (accepting_state)
	}
*/
package pushdown
