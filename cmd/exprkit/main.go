package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: exprkit <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  run <scenario>...   Build, compile and invoke the named scenarios\n")
		fmt.Fprintf(os.Stderr, "  run                 Run every scenario\n")
		fmt.Fprintf(os.Stderr, "  list                List available scenarios\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "run":
		runScenarios(args)
	case "list":
		listScenarios()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runScenarios(names []string) {
	if len(names) == 0 {
		for _, s := range scenarios {
			names = append(names, s.name)
		}
	}
	failed := false
	for _, name := range names {
		s := findScenario(name)
		if s == nil {
			fmt.Fprintf(os.Stderr, "Unknown scenario: %s\n", name)
			os.Exit(1)
		}
		fmt.Printf("== %s\n", s.name)
		if err := s.run(); err != nil {
			fmt.Fprintf(os.Stderr, "scenario %s failed: %v\n", s.name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func listScenarios() {
	for _, s := range scenarios {
		fmt.Printf("  %-24s %s\n", s.name, s.desc)
	}
}

func findScenario(name string) *scenario {
	for i := range scenarios {
		if scenarios[i].name == name {
			return &scenarios[i]
		}
	}
	return nil
}
