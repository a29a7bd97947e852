// Interactive command-line driver for the chess core: renders the board,
// feeds coordinate moves through the generated candidate list, and reports
// when the tracked history permits a draw claim.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/okneroz/chesscore/internal/board"
	"github.com/okneroz/chesscore/internal/game"
	"github.com/okneroz/chesscore/internal/storage"
)

var (
	debug   = flag.Bool("debug", false, "enable debug logging")
	dataDir = flag.String("data-dir", "", "override the game store directory")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := openStore()
	if err != nil {
		log.Fatalf("open game store: %v", err)
	}
	defer store.Close()

	g := game.New()
	fmt.Println(g.Position())
	fmt.Println(`Enter moves in coordinate form (e2e4, e7e8q). Commands: moves, undo, new, save <result>, quit.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", g.Position().SideToMove)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return

		case "moves":
			for _, m := range g.Candidates().Slice() {
				fmt.Printf("%s ", m)
			}
			fmt.Println()

		case "undo":
			if err := g.TakeBack(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(g.Position())

		case "new":
			g.Reset()
			fmt.Println(g.Position())

		case "save":
			result := string(game.ResultOngoing)
			if len(fields) > 1 {
				result = fields[1]
			}
			rec := storage.GameRecord{
				ID:       time.Now().UTC().Format("20060102T150405"),
				Moves:    g.MoveStrings(),
				Result:   result,
				PlayedAt: time.Now().UTC(),
			}
			if err := store.SaveGame(rec); err != nil {
				fmt.Printf("save failed: %v\n", err)
				continue
			}
			fmt.Printf("saved game %s (%d moves)\n", rec.ID, len(rec.Moves))

		default:
			m, err := board.ParseMove(fields[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := g.Play(m); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(g.Position())
			if g.DrawClaimable() {
				slog.Debug("draw claim available",
					"threefold", g.History().IsThreefoldRepetition(),
					"fifty_move", g.History().IsFiftyMoveRule())
				fmt.Println("A draw may be claimed (repetition or fifty-move rule).")
			}
		}
	}
}

func openStore() (*storage.Storage, error) {
	if *dataDir != "" {
		return storage.Open(*dataDir)
	}
	return storage.OpenDefault()
}
