// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/linuxfoundation/lfx-v2-recipe-search/cmd/cli"
)

func main() {
	// SIGINT and SIGTERM cancel in-flight requests; the TUI handles its own keys
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
