package main

import "campus/commands"

func main() {
	commands.Execute()
}
