package main

import "github.com/maxzihq/maxzi-analytics/cmd"

func main() {
	cmd.Execute()
}
