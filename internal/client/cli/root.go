package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/catalog"
	"github.com/iudanet/cartosync/internal/client/config"
	"github.com/iudanet/cartosync/internal/client/iocli"
	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/client/project"
	"github.com/iudanet/cartosync/internal/client/storage/boltdb"
	"github.com/iudanet/cartosync/internal/models"
)

// globalFlags переопределяют значения файла конфигурации
type globalFlags struct {
	configPath string
	serverURL  string
	dbPath     string
	logLevel   string
	project    string
}

// app собирается в PersistentPreRunE и закрывается в PersistentPostRunE
type app struct {
	cli     *Cli
	storage *boltdb.Storage
}

// NewRootCommand builds the cartosync command tree writing to io.
func NewRootCommand(io iocli.IO, version string) *cobra.Command {
	flags := &globalFlags{}
	a := &app{}

	root := &cobra.Command{
		Use:           "cartosync",
		Short:         "Edit and watch cartography projects on a cartosync server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, io, flags)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath(), "path to the config file")
	pf.StringVar(&flags.serverURL, "server", "", "server URL (overrides server_url)")
	pf.StringVar(&flags.dbPath, "db", "", "path to the local database (overrides db_path)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVarP(&flags.project, "project", "p", "", "project URL, defaults to the one selected with use")

	// run оборачивает обработчик, которому нужен собранный Cli
	run := func(fn func(ctx context.Context, c *Cli, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), a.cli, args)
		}
	}
	url := func() string { return flags.project }

	var offline bool
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects of the server",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runProjects(ctx, offline)
		}),
	}
	projectsCmd.Flags().BoolVar(&offline, "offline", false, "list the cached projects without contacting the server")

	useCmd := &cobra.Command{
		Use:   "use <project>",
		Short: "Select the project other commands work on",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runUse(ctx, args[0])
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show styles, layers, dashboard and bookmarks of the project",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runShow(ctx, url())
		}),
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow server changes of the project until interrupted",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runWatch(ctx, url())
		}),
	}

	root.AddCommand(projectsCmd, useCmd, showCmd, watchCmd,
		newStyleCommand(run, url),
		newLayerCommand(run, url),
		newDashboardCommand(run, url),
		newBookmarkCommand(run, url),
		newSettingsCommand(run, url),
	)
	return root
}

type runner func(fn func(ctx context.Context, c *Cli, args []string) error) func(*cobra.Command, []string) error

func newStyleCommand(run runner, url func() string) *cobra.Command {
	cmd := &cobra.Command{Use: "style", Short: "List and toggle styles"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the style order",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runStyleList(ctx, url())
			}),
		},
		&cobra.Command{
			Use:   "toggle <style>...",
			Short: "Switch styles on or off",
			Args:  cobra.MinimumNArgs(1),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runStyleToggle(ctx, url(), args)
			}),
		},
	)
	return cmd
}

func newLayerCommand(run runner, url func() string) *cobra.Command {
	indexed := func(use, short string, fn func(ctx context.Context, c *Cli, index int) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <index>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return fn(ctx, c, index)
			}),
		}
	}

	cmd := &cobra.Command{Use: "layer", Short: "Manage project layers"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the layers",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runLayerList(ctx, url())
			}),
		},
		&cobra.Command{
			Use:   "add",
			Short: "Add a layer interactively",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runLayerAdd(ctx, url())
			}),
		},
		indexed("edit", "Edit a layer interactively", func(ctx context.Context, c *Cli, i int) error {
			return c.runLayerEdit(ctx, url(), i)
		}),
		indexed("toggle", "Switch a layer on or off", func(ctx context.Context, c *Cli, i int) error {
			return c.runLayerToggle(ctx, url(), i)
		}),
		indexed("copy", "Append a copy of a layer", func(ctx context.Context, c *Cli, i int) error {
			return c.runLayerCopy(ctx, url(), i)
		}),
		indexed("remove", "Remove a layer", func(ctx context.Context, c *Cli, i int) error {
			return c.runLayerRemove(ctx, url(), i)
		}),
	)
	return cmd
}

func newDashboardCommand(run runner, url func() string) *cobra.Command {
	var (
		lon, lat, zoom float64
		sizeX, sizeY   int
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a map, by default showing the view of the last map",
		Args:  cobra.NoArgs,
	}
	addCmd.Flags().Float64Var(&lon, "lon", 0, "center longitude")
	addCmd.Flags().Float64Var(&lat, "lat", 0, "center latitude")
	addCmd.Flags().Float64Var(&zoom, "zoom", models.DefaultZoom, "zoom level")
	addCmd.Flags().IntVar(&sizeX, "size-x", models.DefaultMapSizeX, "width on the dashboard grid")
	addCmd.Flags().IntVar(&sizeY, "size-y", models.DefaultMapSizeY, "height on the dashboard grid")
	addCmd.RunE = run(func(ctx context.Context, c *Cli, _ []string) error {
		var m *models.DashboardMap
		// карта задается явно, только если указан центр
		if addCmd.Flags().Changed("lon") || addCmd.Flags().Changed("lat") {
			m = &models.DashboardMap{Coords: [2]float64{lon, lat}, Zoom: zoom, SizeX: sizeX, SizeY: sizeY}
		}
		return c.runDashboardAdd(ctx, url(), m)
	})

	cmd := &cobra.Command{Use: "dashboard", Short: "Manage dashboard maps"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the dashboard maps",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runDashboardList(ctx, url())
			}),
		},
		addCmd,
		&cobra.Command{
			Use:   "remove <index>",
			Short: "Remove a dashboard map",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return c.runDashboardRemove(ctx, url(), index)
			}),
		},
	)
	return cmd
}

func newBookmarkCommand(run runner, url func() string) *cobra.Command {
	cmd := &cobra.Command{Use: "bookmark", Short: "Manage bookmarked views"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the bookmarks",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runBookmarkList(ctx, url())
			}),
		},
		&cobra.Command{
			Use:   "add <map-index> <title>",
			Short: "Bookmark the view of a dashboard map",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return c.runBookmarkAdd(ctx, url(), index, args[1])
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runBookmarkRemove(ctx, url(), args[0])
			}),
		},
		&cobra.Command{
			Use:   "restore <id>",
			Short: "Add a dashboard map showing a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runBookmarkRestore(ctx, url(), args[0])
			}),
		},
	)
	return cmd
}

func newSettingsCommand(run runner, url func() string) *cobra.Command {
	var (
		width, height int
		collapsed     bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the app settings of the project",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&width, "sidebar-width", models.UnsetSize, "sidebar width in pixels")
	cmd.Flags().IntVar(&height, "logging-height", models.UnsetSize, "logging pane height in pixels")
	cmd.Flags().BoolVar(&collapsed, "sidebar-collapsed", false, "collapse the sidebar")
	cmd.RunE = run(func(ctx context.Context, c *Cli, _ []string) error {
		var u settingsUpdate
		if cmd.Flags().Changed("sidebar-width") {
			u.sidebarWidth = &width
		}
		if cmd.Flags().Changed("logging-height") {
			u.loggingHeight = &height
		}
		if cmd.Flags().Changed("sidebar-collapsed") {
			u.sidebarCollapsed = &collapsed
		}
		return c.runSettings(ctx, url(), u)
	})
	return cmd
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return index, nil
}

// open загружает конфигурацию, открывает локальную базу и собирает Cli
func (a *app) open(cmd *cobra.Command, io iocli.IO, flags *globalFlags) error {
	bootstrap := NewLogger(os.Stderr, slog.LevelWarn)
	cfg, err := config.Load(flags.configPath, bootstrap)
	if err != nil {
		return err
	}
	if flags.serverURL != "" {
		cfg.ServerURL = flags.serverURL
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := NewLogger(os.Stderr, level)

	ctx := cmd.Context()
	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.storage = db

	apiClient := httpClient.NewClient(cfg.ServerURL)
	binder := project.LiveBinder{
		ServerURL: cfg.ServerURL,
		Options: live.Options{
			Logger:            logger,
			ReconnectInterval: cfg.ReconnectInterval,
		},
	}
	a.cli = New(io, apiClient, catalog.New(apiClient, db, logger), db, binder, logger, cfg.SaveDebounce)
	return nil
}

func (a *app) close() error {
	if a.storage == nil {
		return nil
	}
	err := a.storage.Close()
	a.storage = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
