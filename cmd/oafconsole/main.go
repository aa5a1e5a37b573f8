// Command oafconsole is an interactive REPL driving a live oaf.Runtime,
// following the teacher monorepo's own go-prompt usage (see
// prompt/_example/bang-executor).
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	prompt "github.com/joeycumines/go-prompt"
	istrings "github.com/joeycumines/go-prompt/strings"

	"github.com/joeycumines/oaf-runtime/oaf"
)

func main() {
	rt := oaf.New()
	if status := rt.Init(); status != oaf.OK {
		fmt.Fprintf(os.Stderr, "oafconsole: runtime init failed: %s\n", status)
		os.Exit(1)
	}
	defer rt.Shutdown()

	console := &console{rt: rt}
	p := prompt.New(
		console.execute,
		prompt.WithPrefix("oaf> "),
		prompt.WithCompleter(console.complete),
	)
	p.Run()
}

type console struct {
	rt *oaf.Runtime
}

var commands = []prompt.Suggest{
	{Text: "stats", Description: "print a JSON snapshot of runtime counters"},
	{Text: "gc", Description: "force a collection cycle"},
	{Text: "spawn", Description: "spawn N no-op lightweight threads and run them all"},
	{Text: "help", Description: "list available commands"},
	{Text: "exit", Description: "shut the runtime down and quit"},
}

func (c *console) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)
	return prompt.FilterHasPrefix(commands, w, true), startIndex, endIndex
}

func (c *console) execute(input string) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "help":
		for _, cmd := range commands {
			fmt.Printf("  %-10s %s\n", cmd.Text, cmd.Description)
		}
	case "stats":
		fmt.Println(c.rt.StatsJSON())
	case "gc":
		collected := c.rt.GC().Collect()
		fmt.Printf("collected %d object(s)\n", collected)
	case "spawn":
		n := 4
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				n = v
			}
		}
		for i := 0; i < n; i++ {
			c.rt.Scheduler().Spawn(func(any) (any, bool) { return nil, true }, nil)
		}
		executed := c.rt.Scheduler().RunAll()
		fmt.Printf("ran %d thread(s)\n", executed)
	case "exit":
		c.rt.Shutdown()
		os.Exit(0)
	default:
		fmt.Printf("unknown command: %s (try 'help')\n", fields[0])
	}
}
