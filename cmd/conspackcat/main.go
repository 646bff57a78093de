// Command conspackcat is a thin CLI demo around the conspack codec: decode
// a file and print its Go-syntax value, or print the grammar group of a
// file's leading header byte. It carries no codec logic of its own.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lispwire/conspack"
	"github.com/lispwire/conspack/header"
)

func main() {
	app := &cli.App{
		Name:  "conspackcat",
		Usage: "inspect conspack-encoded files",
		Commands: []*cli.Command{
			decodeCommand(),
			headerCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "conspackcat:", err)
		os.Exit(1)
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a conspack file and print its Go-syntax value",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 2)
			}

			v, err := conspack.DecodeFile(c.Args().First())
			if err != nil {
				return err
			}

			fmt.Printf("%#v\n", v)

			return nil
		},
	}
}

func headerCommand() *cli.Command {
	return &cli.Command{
		Name:      "header",
		Usage:     "print the grammar group of a file's leading header byte",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 2)
			}

			b, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}
			if len(b) == 0 {
				return cli.Exit("empty file", 1)
			}

			fmt.Printf("0x%02x -> %s\n", b[0], groupName(header.Classify(b[0])))

			return nil
		},
	}
}

func groupName(g header.Group) string {
	switch g {
	case header.GroupBool:
		return "bool/nil"
	case header.GroupNumber:
		return "number"
	case header.GroupContainer:
		return "container"
	case header.GroupString:
		return "string"
	case header.GroupRef:
		return "ref"
	case header.GroupRemoteRef:
		return "remote-ref"
	case header.GroupPointer:
		return "pointer"
	case header.GroupTag:
		return "tag"
	case header.GroupCons:
		return "cons"
	case header.GroupPackage:
		return "package"
	case header.GroupSymbol:
		return "symbol"
	case header.GroupCharacter:
		return "character"
	case header.GroupProperties:
		return "properties (reserved)"
	case header.GroupIndex:
		return "index"
	default:
		return "unknown"
	}
}
