package gns3

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Version is the server's version report.
type Version struct {
	Version string `json:"version"`
	Local   bool   `json:"local"`
}

// Compute is a server that runs emulators.
type Compute struct {
	ComputeID          string         `json:"compute_id"`
	Name               string         `json:"name,omitempty"`
	Host               string         `json:"host,omitempty"`
	Port               int            `json:"port,omitempty"`
	Protocol           string         `json:"protocol,omitempty"`
	User               string         `json:"user,omitempty"`
	Connected          bool           `json:"connected"`
	CPUUsagePercent    float64        `json:"cpu_usage_percent,omitempty"`
	MemoryUsagePercent float64        `json:"memory_usage_percent,omitempty"`
	Capabilities       map[string]any `json:"capabilities,omitempty"`
}

// ComputePorts lists console and UDP ports used by a compute.
type ComputePorts struct {
	ConsolePortRange []int `json:"console_port_range"`
	ConsolePorts     []int `json:"console_ports"`
	UDPPortRange     []int `json:"udp_port_range"`
	UDPPorts         []int `json:"udp_ports"`
}

// Image is an emulator image stored on a compute.
type Image struct {
	Filename string `json:"filename"`
	Path     string `json:"path,omitempty"`
	MD5Sum   string `json:"md5sum,omitempty"`
	FileSize int64  `json:"filesize,omitempty"`
}

// LocalCompute is the ID of the compute embedded in the server.
const LocalCompute = "local"

func computeOrLocal(id string) string {
	if id == "" {
		return LocalCompute
	}
	return id
}

// GetVersion returns the server version.
func GetVersion(ctx context.Context, c *Connector) (*Version, error) {
	var v Version
	if err := c.get(ctx, c.endpoint("version"), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetComputes lists the computes registered on the server.
func GetComputes(ctx context.Context, c *Connector) ([]*Compute, error) {
	var computes []*Compute
	if err := c.get(ctx, c.endpoint("computes"), &computes); err != nil {
		return nil, err
	}
	return computes, nil
}

// GetCompute returns one compute. An empty ID means the local compute.
func GetCompute(ctx context.Context, c *Connector, computeID string) (*Compute, error) {
	var compute Compute
	if err := c.get(ctx, c.endpoint("computes", computeOrLocal(computeID)), &compute); err != nil {
		return nil, err
	}
	return &compute, nil
}

// GetComputePorts returns the console and UDP ports in use on a compute.
func GetComputePorts(ctx context.Context, c *Connector, computeID string) (*ComputePorts, error) {
	var ports ComputePorts
	if err := c.get(ctx, c.endpoint("computes", computeOrLocal(computeID), "ports"), &ports); err != nil {
		return nil, err
	}
	return &ports, nil
}

// GetComputeImages lists the images available to emulator on a compute.
func GetComputeImages(ctx context.Context, c *Connector, emulator, computeID string) ([]*Image, error) {
	if emulator == "" {
		return nil, newError("GetComputeImages", ErrInvalidArgument, "emulator is required")
	}
	var images []*Image
	if err := c.get(ctx, c.endpoint("computes", computeOrLocal(computeID), emulator, "images"), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UploadComputeImage uploads the file at path, read from fs, as an image for
// emulator on a compute. The image keeps the file's base name.
func UploadComputeImage(ctx context.Context, c *Connector, fs afero.Fs, emulator, path, computeID string) error {
	if emulator == "" {
		return newError("UploadComputeImage", ErrInvalidArgument, "emulator is required")
	}
	info, err := fs.Stat(path)
	if err != nil {
		return newError("UploadComputeImage", ErrNotFound, "could not find file: %s", path)
	}
	if info.IsDir() {
		return newError("UploadComputeImage", ErrInvalidArgument, "%s is a directory", path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	if err := c.Upload(ctx, c.endpoint("computes", computeOrLocal(computeID), emulator, "images", filename), f, info.Size()); err != nil {
		return err
	}
	c.logger.Debug("image uploaded", "emulator", emulator, "file", filename, "size", info.Size())
	return nil
}
