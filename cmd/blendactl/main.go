// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command blendactl is the operator CLI: migrations, accounts, teams and brands.
package main

import (
	"fmt"
	"os"

	"github.com/taibuivan/blenda/cmd/blendactl/cli"
	"github.com/taibuivan/blenda/internal/platform/constants"
)

func main() {
	root := cli.NewRootCommand(constants.AppVersion)

	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewUserCommand())
	root.AddCommand(cli.NewTeamCommand())
	root.AddCommand(cli.NewBrandCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
