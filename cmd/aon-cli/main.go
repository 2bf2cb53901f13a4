package main

import (
	"aonscraper/cmd/aon-cli/commands"
	"aonscraper/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
