// main is the entry point for the tempdash CLI.
package main

import (
	"github.com/huangsam/tempdash/cmd"
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/iojournal"
)

func main() {
	err := cmd.Execute()
	iojournal.CloseStores()
	if err != nil {
		contract.LogFatal("tempdash", err)
	}
}
