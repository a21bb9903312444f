package main

import (
	"context"
	"fmt"

	"github.com/loykin/sidekick/pkg/client"
)

func newClient(flags APIFlags) *client.Client {
	cfg := client.DefaultConfig()
	if flags.URL != "" {
		cfg.BaseURL = flags.URL
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	return client.New(cfg)
}

func runStart(flags APIFlags) error {
	c := newClient(flags)
	msg, err := c.Start(context.Background())
	if err != nil {
		return fmt.Errorf("start sidecar: %w", err)
	}
	fmt.Println(msg)
	return nil
}

func runStop(flags APIFlags) error {
	c := newClient(flags)
	msg, err := c.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("stop sidecar: %w", err)
	}
	fmt.Println(msg)
	return nil
}

func runStatus(flags APIFlags) error {
	c := newClient(flags)
	st, err := c.Status(context.Background())
	if err != nil {
		return fmt.Errorf("sidecar status: %w", err)
	}
	if st.Alive && st.PID != nil {
		fmt.Printf("alive (pid %d)\n", *st.PID)
	} else {
		fmt.Println("not running")
	}
	return nil
}
