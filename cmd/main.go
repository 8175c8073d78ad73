// Package cmd implements the niv command line interface. It is glue over
// the valuation engine: commands load configuration, wire the engine's
// collaborators together and render the result.
package cmd

import "github.com/google/subcommands"

// Commands lists the subcommands to register, in display order.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&checkCmd{},
}
