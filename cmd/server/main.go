package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/yourusername/nuggets/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	mapPath, seed, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	srv, err := start(mapPath, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	defer srv.Close()

	log.Printf("Ready to play, waiting at port %d", srv.Addr().Port)
	srv.Run()
	return 0
}

// parseArgs validates the server's positional arguments, returning an
// error wrapping ErrBadArguments for anything that fails before the map
// is parsed, including a map path that cannot be opened for reading.
func parseArgs(args []string) (mapPath string, seed int64, err error) {
	if len(args) != 2 && len(args) != 3 {
		return "", 0, fmt.Errorf("%w: usage: server map.txt [seed]", server.ErrBadArguments)
	}

	mapPath = args[1]
	seed = time.Now().UnixNano()
	if len(args) == 3 {
		parsed, convErr := strconv.Atoi(args[2])
		if convErr != nil || parsed <= 0 {
			return "", 0, fmt.Errorf("%w: seed provided must be a positive integer", server.ErrBadArguments)
		}
		seed = int64(parsed)
	}

	f, openErr := os.Open(mapPath)
	if openErr != nil {
		return "", 0, fmt.Errorf("%w: %s is not readable: %v", server.ErrBadArguments, mapPath, openErr)
	}
	f.Close()
	return mapPath, seed, nil
}

// start loads the map, builds the game, and binds the socket. A bad map
// (parse failure or unplaceable gold) and a socket bind failure are
// distinguished by exitCode, not by the error returned here.
func start(mapPath string, seed int64) (*server.Server, error) {
	m, err := server.LoadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("bad map: %w", err)
	}

	game, err := server.NewGame(m, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("bad map: %w", err)
	}

	srv, err := server.NewServer(game, 0)
	if err != nil {
		return nil, err
	}
	return srv, nil
}

// exitCode maps an error to the process exit code spec.md §6 requires:
// 1 for bad arguments or an unreadable/unusable map, 2 only for a socket
// bind failure.
func exitCode(err error) int {
	if errors.Is(err, server.ErrSocket) {
		return 2
	}
	return 1
}
