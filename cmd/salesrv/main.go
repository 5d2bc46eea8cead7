package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/logtrace"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/orgmanager"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {

	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}
	if err := db.Init(context.Background()); err != nil {
		slog.Error().Err(err).Msg("unable to open database pool")
		os.Exit(1)
	}
	if err := db.MigratePublic(); err != nil {
		slog.Error().Err(err).Msg("public schema migration failed")
		os.Exit(1)
	}
	if config.Config().SingleOrgMode {
		slog.Info().Msg("single org mode enabled")
		if err := bootstrapDefaultOrg(); err != nil {
			slog.Error().Err(err).Msg("unable to bootstrap default organization")
			os.Exit(1)
		}
	}
	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()
	slog.Info().Str("port", config.Config().ServerPort).Msg("listening")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// bootstrapDefaultOrg creates the configured default organization and admin
// user if they do not exist yet.
func bootstrapDefaultOrg() error {
	cfg := config.Config()
	ctx := db.ConnCtx(context.Background())
	defer db.DB(ctx).Close(ctx)

	org, err := db.DB(ctx).GetOrganizationBySlug(ctx, cfg.DefaultOrgSlug)
	if err != nil {
		if !err.Is(dberror.ErrNotFound) {
			return err
		}
		org, err = orgmanager.CreateOrganization(ctx, &orgmanager.OrganizationRequest{
			Name: cfg.DefaultOrgName,
			Slug: cfg.DefaultOrgSlug,
		})
		if err != nil {
			return err
		}
	}

	if _, err := db.DB(ctx).GetUserByEmail(ctx, org.OrgID, cfg.DefaultAdminEmail); err == nil {
		return nil
	} else if !err.Is(dberror.ErrNotFound) {
		return err
	}
	_, err = orgmanager.CreateUser(ctx, org.OrgID, &orgmanager.UserRequest{
		Email:    cfg.DefaultAdminEmail,
		FullName: "Administrator",
		Role:     "admin",
		Password: cfg.DefaultAdminPassword,
	})
	return err
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
