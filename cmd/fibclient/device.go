package main

import (
	"fmt"

	"github.com/jhan1998/fibdrv"
)

// openSession creates a device from the optional config file and opens its
// single session. The returned func closes both.
func openSession(configPath string, verbose bool) (*fibdrv.Session, func(), error) {
	opts := fibdrv.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = fibdrv.LoadOptions(configPath); err != nil {
			return nil, nil, err
		}
	}
	opts.Logger = newLogger(verbose)

	dev, err := fibdrv.NewDeviceWithOptions(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create device: %w", err)
	}
	sess, err := dev.Open()
	if err != nil {
		dev.Close()
		return nil, nil, fmt.Errorf("failed to open device: %w", err)
	}
	return sess, func() {
		sess.Close()
		dev.Close()
	}, nil
}
