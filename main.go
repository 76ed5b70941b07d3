package main

import "github.com/KwaminaWhyte/esimbridge/cmd"

func main() {
	cmd.Execute()
}
