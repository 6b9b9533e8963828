package compute

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect computes and manage their images"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl compute <subcommand> [options] [args]

  This command groups subcommands for listing computes and their emulator
  images, and for uploading images.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List computes"
}

func (c *ListCommand) Help() string {
	return `Usage: gns3ctl compute list [options]

  Lists the computes registered on the server.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("compute list", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	computes, err := gns3.GetComputes(ctx, conn)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing computes: %v", err))
		return 1
	}

	rows := make([][]string, 0, len(computes))
	for _, cp := range computes {
		rows = append(rows, []string{
			cp.Name, cp.ComputeID, cp.Host, strconv.FormatBool(cp.Connected),
			fmt.Sprintf("%.0f%%", cp.CPUUsagePercent), fmt.Sprintf("%.0f%%", cp.MemoryUsagePercent),
		})
	}
	if err := c.Print(computes, []string{"NAME", "COMPUTE ID", "HOST", "CONNECTED", "CPU", "MEMORY"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type ImagesCommand struct {
	*base.Command

	flagEmulator string
	flagCompute  string
}

func (c *ImagesCommand) Synopsis() string {
	return "List emulator images on a compute"
}

func (c *ImagesCommand) Help() string {
	return `Usage: gns3ctl compute images -emulator <emulator> [options]

  Lists the images a compute holds for an emulator such as qemu, iou or
  dynamips.` +
		c.Flags().Help()
}

func (c *ImagesCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("compute images", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	f.StringVar(&c.flagEmulator, "emulator", "qemu", "Emulator whose images to list.")
	f.StringVar(&c.flagCompute, "compute", gns3.LocalCompute, "Compute ID.")
	return f
}

func (c *ImagesCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	images, err := gns3.GetComputeImages(ctx, conn, c.flagEmulator, c.flagCompute)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing images: %v", err))
		return 1
	}

	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{img.Filename, humanize.Bytes(uint64(img.FileSize)), img.MD5Sum})
	}
	if err := c.Print(images, []string{"FILENAME", "SIZE", "MD5"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type UploadCommand struct {
	*base.Command

	// FS is where images are read from. Defaults to the OS filesystem.
	FS afero.Fs

	flagEmulator string
	flagCompute  string
}

func (c *UploadCommand) Synopsis() string {
	return "Upload an emulator image to a compute"
}

func (c *UploadCommand) Help() string {
	return `Usage: gns3ctl compute upload -emulator <emulator> [options] <path>

  Uploads an image file to a compute. The image keeps the file's name.` +
		c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("compute upload", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagEmulator, "emulator", "qemu", "Emulator the image is for.")
	f.StringVar(&c.flagCompute, "compute", gns3.LocalCompute, "Compute ID.")
	return f
}

func (c *UploadCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("exactly one image path is required")
		return 1
	}
	path := flags.Arg(0)

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := gns3.UploadComputeImage(ctx, conn, fs, c.flagEmulator, path, c.flagCompute); err != nil {
		ui.Error(fmt.Sprintf("error uploading image: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Uploaded %s", path))
	return 0
}
