/*
Package runner drives a terminal.Machine from a line-oriented reader.

It is the fallback front-end used when stdin is not a TTY (pipes, scripts,
CI) and the full-screen TUI cannot run. Each line read is submitted to the
machine; the loop waits for that submission to be applied and then prints
the entries it produced.

# Usage

	r := runner.New(machine,
		runner.WithIO(os.Stdin, os.Stdout),
		runner.WithRenderer(tui.NewRenderer()),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
