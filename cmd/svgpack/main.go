// Command svgpack packs, inspects, unpacks and customizes icon packs.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
