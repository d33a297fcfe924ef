// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// matsCmd returns the command listing the materials database
func (a *app) matsCmd() *cobra.Command {
	var asjson bool
	cmd := &cobra.Command{
		Use:   "mats",
		Short: "List the materials database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mdb, err := a.readMats()
			if err != nil {
				return
			}
			w := cmd.OutOrStdout()
			if asjson {
				fmt.Fprintln(w, mdb)
				return
			}
			l := io.Sf("%-16s%-12s%6s  %s\n", "name", "model", "nprms", "extra")
			for _, name := range mdb.Names() {
				m := mdb.Get(name)
				l += io.Sf("%-16s%-12s%6d  %s\n", m.Name, m.Model, len(m.Prms), m.Extra)
			}
			fmt.Fprint(w, l)
			return
		},
	}
	cmd.Flags().BoolVar(&asjson, "json", false, "print materials as JSON")
	return cmd
}
