package main

import "github.com/cmmoran/buildgen/cmd"

func main() {
	cmd.Execute()
}
