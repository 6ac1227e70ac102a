package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/dot2shader"
	"github.com/bodgit/dot2shader/glsl"
)

const defaultConfigFile = "default.json"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func resolveConfig(path string, logger *log.Logger) (glsl.DisplayConfig, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return glsl.DefaultConfig(), err
		}
		defer f.Close()
		return glsl.LoadConfig(f)
	}

	// No explicit configuration; use default.json from the working
	// directory when present, otherwise the built-in defaults.
	f, err := os.Open(defaultConfigFile)
	if err != nil {
		return glsl.DefaultConfig(), nil
	}
	defer f.Close()

	config, err := glsl.LoadConfig(f)
	if err != nil {
		logger.Printf("ignoring %s: %v\n", defaultConfigFile, err)
		return glsl.DefaultConfig(), nil
	}
	return config, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "dot2shader"
	app.Usage = "convert pixel art into GLSL shader source"
	app.ArgsUsage = "IMAGE [CONFIG]"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to display configuration",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "defaults",
			Usage:       "Print the default display configuration",
			Description: "Writes the default configuration as JSON, suitable for saving as default.json",
			Action: func(c *cli.Context) error {
				return glsl.SaveConfig(os.Stdout, glsl.DefaultConfig())
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(ioutil.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		data, err := ioutil.ReadFile(c.Args().First())
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		art, err := dot2shader.DecodeBytes(data)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		logger.Printf("%dx%d image, %d colors\n", art.Width(), art.Height(), len(art.Palette()))

		configPath := c.String("config")
		if configPath == "" && c.NArg() > 1 {
			configPath = c.Args().Get(1)
		}
		config, err := resolveConfig(configPath, logger)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		fmt.Println(glsl.Render(art, config))

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
