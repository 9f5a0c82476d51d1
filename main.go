package main

import "github.com/naito-dev/orgstats/cmd"

func main() {
	cmd.Execute()
}
