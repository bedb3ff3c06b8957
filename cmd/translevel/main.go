// Package main provides the translevel CLI for defect formation energies and
// transition-level diagrams.
package main

func main() {
	Execute()
}
