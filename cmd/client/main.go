package main

import (
	"os"
	"strconv"

	"github.com/yourusername/nuggets/internal/client"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 3 && len(os.Args) != 4 {
		client.PrintFatal("usage: client hostname port [playername]")
		return 1
	}

	host := os.Args[1]
	port, err := strconv.Atoi(os.Args[2])
	if err != nil || port <= 0 {
		client.PrintFatal("port must be a positive integer")
		return 1
	}

	conn, err := client.Dial(host, port)
	if err != nil {
		client.PrintFatal("%v", err)
		return 2
	}
	defer conn.Close()

	if len(os.Args) == 4 {
		err = conn.Join(os.Args[3])
	} else {
		err = conn.Spectate()
	}
	if err != nil {
		client.PrintFatal("%v", err)
		return 2
	}

	state := &client.State{}
	game := client.NewTermloopGame(conn, state)
	game.Run()

	if state.Err != "" && !state.Quit {
		client.ShowErrorBanner(state.Err)
		return 2
	}
	client.ShowQuitBanner(state.QuitText)
	return 0
}
