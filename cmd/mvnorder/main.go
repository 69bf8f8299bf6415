package main

import "mvnorder/internal/cli"

func main() {
	cli.Execute()
}
