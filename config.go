// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configuration keys; the same names are used by flags, the cdpm.yaml file
// and the CDPM_ environment variables
const (
	cfgMatfile  = "matfile"
	cfgNdim     = "ndim"
	cfgStore    = "store"
	cfgEnc      = "enc"
	cfgPlotdir  = "plotdir"
	cfgPlotext  = "plotext"
	cfgSilent   = "silent"
	cfgMaxhalve = "maxhalve"
	cfgWorkers  = "workers"
)

// config holds the settings shared by all commands
type config struct {
	Matdir   string // directory of materials file
	Matfn    string // materials filename
	Ndim     int    // space dimension; 1 means uniaxial stress
	Store    string // checkpoint database; empty means no checkpoints
	Enc      string // encoder of checkpoints: "gob" or "json"
	Plotdir  string // directory of figures; empty means no figures
	Plotext  string // extension of figures
	Silent   bool   // do not show progress messages
	MaxHalve int    // maximum number of halvings of strain increments
	Workers  int    // maximum number of concurrent points in batch runs
}

// newViper returns a viper instance with defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgMatfile, "concrete.mat")
	v.SetDefault(cfgNdim, 3)
	v.SetDefault(cfgEnc, "gob")
	v.SetDefault(cfgPlotext, "png")
	v.SetDefault(cfgMaxhalve, 8)
	v.SetDefault(cfgWorkers, 0)
	v.SetEnvPrefix("CDPM")
	v.AutomaticEnv()
	return v
}

// loadConfig reads the configuration with precedence: flags > environment > file > defaults
//  cfgfile -- configuration file; if empty, cdpm.yaml is searched in the current directory
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, cfgfile string) (cfg config, err error) {
	if err = v.BindPFlags(flags); err != nil {
		return cfg, chk.Err("cannot bind flags\n%v", err)
	}
	if cfgfile != "" {
		v.SetConfigFile(cfgfile)
	} else {
		v.SetConfigName("cdpm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err = v.ReadInConfig(); err != nil {
		var notfound viper.ConfigFileNotFoundError
		if cfgfile != "" || !errors.As(err, &notfound) {
			return cfg, chk.Err("cannot read configuration\n%v", err)
		}
		err = nil
	}
	cfg.Matdir, cfg.Matfn = splitMatfile(v.GetString(cfgMatfile))
	cfg.Ndim = v.GetInt(cfgNdim)
	cfg.Store = v.GetString(cfgStore)
	cfg.Enc = strings.ToLower(v.GetString(cfgEnc))
	cfg.Plotdir = v.GetString(cfgPlotdir)
	cfg.Plotext = v.GetString(cfgPlotext)
	cfg.Silent = v.GetBool(cfgSilent)
	cfg.MaxHalve = v.GetInt(cfgMaxhalve)
	cfg.Workers = v.GetInt(cfgWorkers)
	err = cfg.check()
	return
}

// check checks the configuration
func (o config) check() error {
	switch {
	case o.Matfn == "":
		return chk.Err("materials file is required")
	case o.Ndim < 1 || o.Ndim > 3:
		return chk.Err("ndim must be 1, 2 or 3; %d is incorrect", o.Ndim)
	case o.Enc != "gob" && o.Enc != "json":
		return chk.Err("encoder must be \"gob\" or \"json\"; %q is incorrect", o.Enc)
	case o.MaxHalve < 0:
		return chk.Err("maxhalve must not be negative")
	case o.Workers < 0:
		return chk.Err("workers must not be negative")
	}
	return nil
}

// splitMatfile splits the path of a materials file into directory and filename
func splitMatfile(mat string) (dir, fn string) {
	dir, fn = filepath.Split(mat)
	if dir == "" {
		dir = "."
	}
	return
}
