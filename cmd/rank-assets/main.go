package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nickromney-org/scoop-manifest-gen/pkg/asset"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// rank-assets prints the ranking the generator would apply to a list of
// asset file names, read from the arguments or one per line from stdin.
func main() {
	pattern := flag.String("pattern", "", "glob restricting candidate assets")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		var err error
		names, err = readNames(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading asset names: %v\n", err)
			os.Exit(1)
		}
	}

	assets := make([]types.Asset, 0, len(names))
	for _, name := range names {
		assets = append(assets, types.Asset{Name: name})
	}

	candidates, err := asset.Filter(assets, *pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ranked := asset.Rank(candidates)
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no asset names given")
		os.Exit(1)
	}

	for i, r := range ranked {
		marker := ""
		if i == 0 {
			marker = "  <- selected"
		}
		fmt.Printf("%-4d %-20s %-8s %s%s\n", i+1, r.Key.String(), asset.DetectArch(r.Asset.Name), r.Asset.Name, marker)
	}

	if ranked[0].Key.Excluded() {
		fmt.Println("⚠️  No Windows asset found; the best excluded asset would be used")
		os.Exit(2)
	}
}

// readNames returns the non-blank lines of r
func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
