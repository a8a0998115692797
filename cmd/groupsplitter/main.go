// Package main implements groupsplitter, a tool for assigning participants to balanced groups across multiple days.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/takuo/go-groupsplitter/cmd/groupsplitter/command"
)

func main() {
	cli := &command.CLI{}
	parser := kong.Must(cli, &kong.Vars{"version": fmt.Sprintf("groupsplitter: %s", command.Version())},
		kong.Name("groupsplitter"),
		kong.Description("Assign company-tagged participants to balanced groups across multiple days."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}
