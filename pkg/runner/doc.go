/*
Package runner executes many inputs against one automaton.

A definition is immutable once loaded and the engine keeps no per-run state, so
inputs can run in parallel. The Runner bounds that parallelism and returns the
results in input order, whatever order the runs finished in.

# Usage

	r := runner.NewRunner(eng,
		runner.WithConcurrency(8),
		runner.WithLogger(logger),
	)

	items, err := r.Run(ctx, "palindrome", []string{"0#0", "01#10", "2"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(runner.Summarize(items))
*/
package runner
