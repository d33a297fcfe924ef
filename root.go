// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"github.com/tianhaichen/oofem-1/ckpt"
	"github.com/tianhaichen/oofem-1/inp"
	"github.com/tianhaichen/oofem-1/msolid"
)

// app holds the state shared by the commands of one invocation
type app struct {
	cfgfile string // --config flag
	cfg     config // loaded configuration
	simfnk  string // key of models allocated by this invocation
}

// newRootCmd returns the cdpm command with all subcommands
func newRootCmd() *cobra.Command {
	a := &app{simfnk: "cdpm"}
	v := newViper()
	root := &cobra.Command{
		Use:   "cdpm",
		Short: "Concrete damage-plasticity model driver",
		Long: `cdpm drives the CDPM2 concrete damage-plasticity model (and the other
solid models of this module) along prescribed strain paths.

Settings are read from flags, CDPM_ environment variables and a cdpm.yaml
file, in this order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.cfg, err = loadConfig(v, cmd.Flags(), a.cfgfile)
			if err != nil {
				return
			}
			io.Verbose = !a.cfg.Silent
			return
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgfile, "config", "", "configuration file (default: ./cdpm.yaml)")
	pf.String(cfgMatfile, "concrete.mat", "materials file")
	pf.Int(cfgNdim, 3, "space dimension; 1 means uniaxial stress")
	pf.String(cfgStore, "", "sqlite database of checkpoints")
	pf.String(cfgEnc, "gob", "encoder of checkpoints: gob or json")
	pf.String(cfgPlotdir, "", "directory of figures")
	pf.String(cfgPlotext, "png", "extension of figures: png, svg or pdf")
	pf.Bool(cfgSilent, false, "do not show progress messages")
	pf.Int(cfgMaxhalve, 8, "maximum number of halvings of strain increments")
	pf.Int(cfgWorkers, 0, "maximum number of concurrent points (0 means no limit)")

	root.AddCommand(a.runCmd())
	root.AddCommand(a.batchCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.matsCmd())
	root.AddCommand(a.restoreCmd())
	return root
}

// readMats reads the materials database
func (a *app) readMats() (*inp.MatDb, error) {
	return inp.ReadMat(a.cfg.Matdir, a.cfg.Matfn)
}

// model returns a new model for a material
func (a *app) model(mdb *inp.MatDb, matname string) (msolid.Model, error) {
	return inp.GetModel(mdb, a.simfnk, matname, a.cfg.Ndim, false, true)
}

// openStore opens the checkpoint database; nil if not configured
func (a *app) openStore() (*ckpt.Store, error) {
	if a.cfg.Store == "" {
		return nil, nil
	}
	store, err := ckpt.Open(a.cfg.Store)
	if err != nil {
		return nil, err
	}
	store.Enc = a.cfg.Enc
	return store, nil
}
