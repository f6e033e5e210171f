package main

import "github.com/ridoystarlord/olapschema/cmd"

func main() {
	cmd.Execute()
}
