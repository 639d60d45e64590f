package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/tileset"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tileset.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// openDB opens an existing database. Commands that only read must not leave
// an empty database behind.
func openDB(c *cli.Context) (*tileset.AssetDB, error) {
	file := c.String("db")
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("no database at %s: %w", file, err)
	}
	return tileset.NewAssetDB(file, newLogger(c))
}

// load reads the named tileset either from --dir or from the database.
func load(c *cli.Context, name string) (*tileset.Tileset, error) {
	if dir := c.String("dir"); dir != "" {
		return tileset.Open(dir, name)
	}

	db, err := openDB(c)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Load(name)
}

func intArgs(c *cli.Context, from int) ([]int, error) {
	args := c.Args().Slice()[from:]
	ints := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	return ints, nil
}

func megaTile(c *cli.Context) (tileset.MegaTile, []int, error) {
	ints, err := intArgs(c, 1)
	if err != nil {
		return tileset.MegaTile{}, nil, err
	}
	return tileset.MegaTile{Group: ints[0], Subtile: ints[1]}, ints[2:], nil
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "read tileset files from `DIRECTORY` instead of the database",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "tileset"
	app.Usage = "StarCraft tileset inspection utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILESET_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Import tileset files into the database",
			ArgsUsage: "DIRECTORY NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := tileset.NewAssetDB(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Import(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List tilesets in the database",
			Action: func(c *cli.Context) error {
				db, err := openDB(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				names, err := db.Names()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, name := range names {
					fmt.Fprintln(c.App.Writer, name)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print the size of each table",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{dirFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				ts, err := load(c, c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "cv5: %d megatile groups\n", ts.CV5().Len())
				fmt.Fprintf(c.App.Writer, "vx4: %d image reference blocks\n", ts.VX4().Len())
				fmt.Fprintf(c.App.Writer, "vf4: %d flag blocks\n", ts.VF4().Len())
				fmt.Fprintf(c.App.Writer, "vr4: %d minitiles\n", ts.VR4().Len())
				fmt.Fprintf(c.App.Writer, "wpe: %d colors\n", ts.WPE().Len())

				return nil
			},
		},
		{
			Name:      "color",
			Usage:     "Print the color of a minitile pixel",
			ArgsUsage: "NAME GROUP SUBTILE X Y",
			Flags: []cli.Flag{
				dirFlag(),
				&cli.BoolFlag{
					Name:  "srgb",
					Usage: "apply gamma correction",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 5 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				mt, xy, err := megaTile(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				ts, err := load(c, c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				if c.Bool("srgb") {
					s, err := ts.SRGB(mt, xy[0], xy[1])
					if err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Fprintf(c.App.Writer, "%.4f %.4f %.4f\n", s[0], s[1], s[2])
					return nil
				}

				rgb, err := ts.Color(mt, xy[0], xy[1])
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintf(c.App.Writer, "%d %d %d\n", rgb.R, rgb.G, rgb.B)

				return nil
			},
		},
		{
			Name:      "flags",
			Usage:     "Print the gameplay flags of a minitile",
			ArgsUsage: "NAME GROUP SUBTILE",
			Flags:     []cli.Flag{dirFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				mt, _, err := megaTile(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				ts, err := load(c, c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := ts.Flags(mt)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "flags:       0x%04x\n", uint16(f))
				fmt.Fprintf(c.App.Writer, "walkable:    %t\n", f.IsWalkable())
				fmt.Fprintf(c.App.Writer, "low:         %t\n", f.IsElevationLow())
				fmt.Fprintf(c.App.Writer, "mid:         %t\n", f.IsElevationMid())
				fmt.Fprintf(c.App.Writer, "high:        %t\n", f.IsElevationHigh())
				fmt.Fprintf(c.App.Writer, "blocks view: %t\n", f.BlocksView())
				fmt.Fprintf(c.App.Writer, "ramp:        %t\n", f.IsRamp())

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
