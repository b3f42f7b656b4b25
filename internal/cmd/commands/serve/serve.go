package serve

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	api "github.com/Udyana30/rsup-ppk-sub000/internal/api/v2"
	"github.com/Udyana30/rsup-ppk-sub000/internal/config"
	"github.com/Udyana30/rsup-ppk-sub000/internal/db"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/internal/versioning"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
	s3storage "github.com/Udyana30/rsup-ppk-sub000/pkg/storage/s3"
)

type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Run the document portal server"
}

func (c *Command) Help() string {
	return `Usage: ppk serve -config=config.hcl

  Run the document portal API server with the given configuration file.
`
}

func (c *Command) Flags() *flag.FlagSet {
	f := flag.NewFlagSet("serve", flag.ContinueOnError)
	f.StringVar(&c.flagConfig, "config", "config.hcl", "Path to the configuration file")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	log := c.Log
	if log == nil {
		log = hclog.Default()
	}
	log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	gormDB, err := db.NewDB(*cfg.Database, log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}

	var sp storage.Provider
	switch cfg.Storage.Provider {
	case "local":
		sp, err = storage.NewLocalProvider(
			cfg.Storage.LocalPath,
			fmt.Sprintf("%s/files", cfg.BaseURL),
			log,
		)
	case "s3":
		sp, err = s3storage.NewAdapter(cfg.Storage.S3, log)
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing storage provider: %v", err))
		return 1
	}

	srv := server.Server{
		Config:     cfg,
		DB:         gormDB,
		Storage:    sp,
		Versioning: versioning.NewEngine(gormDB, sp, log),
		Logger:     log,
	}

	mux := api.New(srv)

	c.UI.Info(fmt.Sprintf("Listening on %s ...", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		c.UI.Error(fmt.Sprintf("server error: %v", err))
		return 1
	}

	return 0
}
