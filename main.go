package main

import "vsphere-events-cli/cmd"

func main() {
	cmd.Execute()
}
