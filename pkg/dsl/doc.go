/*
Package dsl provides a Go DSL for building pushdown automata in code.

It is an alternative to YAML, JSON or Markdown definition files when automata are
generated, composed in tests, or benefit from IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/pushdown/pkg/dsl"
	)

	func main() {
		b := dsl.New("anbn").
			Describe("Equal runs of a and b.").
			InitialStack("Z").
			Accept(2)

		b.From(0).Read('a').Top('Z').To(0, "ZA")
		b.From(0).Read('a').Top('A').To(0, "AA")
		b.From(0).Read('b').Top('A').To(1, "")
		b.From(1).Read('b').Top('A').To(1, "")
		b.From(1).Top('Z').To(2, "Z") // epsilon input

		// The resulting loader can be passed to pushdown.New with pushdown.WithLoader.
		loader, err := dsl.Loader(b)
		// ...
	}

A rule that never calls Read matches on epsilon input; one that never calls Top
matches only the empty stack.
*/
package dsl
