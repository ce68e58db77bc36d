package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/forestrie/go-merkleblock/merkle"
	"github.com/forestrie/go-merkleblock/service"
	"github.com/forestrie/go-merkleblock/spv"
)

func main() {
	app := &cli.App{
		Name:  "merkleblock",
		Usage: "Build and verify bitcoin style merkle inclusion proofs",
		Commands: []*cli.Command{
			rootCommand(),
			verifyCommand(),
			serveCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:      "root",
		Usage:     "Compute the merkle root of the txids given as arguments (display order hex)",
		ArgsUsage: "TXID [TXID ...]",
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return fmt.Errorf("at least one txid is required")
			}
			leaves := make([]merkle.Hash, 0, ctx.NArg())
			for _, arg := range ctx.Args().Slice() {
				h, err := merkle.HashFromHex(arg)
				if err != nil {
					return fmt.Errorf("txid %q: %w", arg, err)
				}
				leaves = append(leaves, h)
			}
			t, err := merkle.BuildTree(leaves)
			if err != nil {
				return err
			}
			fmt.Println(t.Root())
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a merkleblock proof payload against a trusted root",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "merkleblock",
				Usage:    "The proof payload as plain hex",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "root",
				Usage:    "The trusted merkle root in display order hex, from a validated header",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			payload, err := hex.DecodeString(ctx.String("merkleblock"))
			if err != nil {
				return fmt.Errorf("merkleblock is not valid hex: %w", err)
			}
			trusted, err := merkle.HashFromHex(ctx.String("root"))
			if err != nil {
				return fmt.Errorf("root: %w", err)
			}
			matched, err := spv.Verify(payload, trusted)
			if err != nil {
				return err
			}
			for _, m := range matched {
				fmt.Printf("%d %s\n", m.Index, m.Hash)
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP verification service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "The address to listen on",
				Value:   ":8335",
				EnvVars: []string{"MERKLEBLOCK_LISTEN"},
			},
		},
		Action: func(ctx *cli.Context) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := service.New(logger)
			addr := ctx.String("listen")
			logger.Info("listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, srv.Router())
		},
	}
}
