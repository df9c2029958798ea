// deck is a local bookmark manager: links organized into folders and tags,
// stored in a BadgerDB under the user's data directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"linkdeck/internal/store"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "deck:", err)
		os.Exit(1)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	repo, err := store.NewBadgerRepository(cfg.DBPath, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deck:", err)
		os.Exit(1)
	}
	defer repo.Close()

	s, err := store.New(repo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deck:", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "deck",
		Usage: "Local bookmark manager with folders and tags",
		Commands: []*cli.Command{
			addCommand(s),
			listCommand(s),
			searchCommand(s),
			favCommand(s),
			archiveCommand(s),
			rmCommand(s),
			foldersCommand(s),
			tagsCommand(s),
			exportCommand(s),
			importCommand(s),
			clearCommand(s),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "deck:", err)
		os.Exit(1)
	}
}

func addCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Save a link",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "link title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "link description"},
			&cli.StringSliceFlag{Name: "tag", Usage: "tag (repeatable)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "folder name"},
			&cli.BoolFlag{Name: "favorite", Usage: "mark as favorite"},
		},
		Action: func(c *cli.Context) error {
			url := c.Args().First()
			if url == "" {
				return fmt.Errorf("usage: deck add <url>")
			}

			title := c.String("title")
			if title == "" {
				title = url
			}

			link := s.AddLink(store.LinkInput{
				URL:         url,
				Title:       title,
				Description: c.String("description"),
				Tags:        c.StringSlice("tag"),
				Folder:      c.String("folder"),
				Favorite:    c.Bool("favorite"),
			})
			fmt.Printf("Added %s (%s)\n", link.Title, link.ID)
			return nil
		},
	}
}

func listCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List links, filtered and sorted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "search query"},
			&cli.StringSliceFlag{Name: "tag", Usage: "filter by tag (any match)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "filter by folder"},
			&cli.BoolFlag{Name: "favorites", Usage: "only favorites"},
			&cli.BoolFlag{Name: "archived", Usage: "include only archived links"},
			&cli.StringFlag{Name: "sort", Value: store.SortByUpdatedAt, Usage: "title|url|createdAt|updatedAt"},
			&cli.StringFlag{Name: "order", Value: store.SortDesc, Usage: "asc|desc"},
		},
		Action: func(c *cli.Context) error {
			options := store.FilterOptions{
				Search:    c.String("search"),
				Tags:      c.StringSlice("tag"),
				Folder:    c.String("folder"),
				SortBy:    c.String("sort"),
				SortOrder: c.String("order"),
			}
			if c.Bool("favorites") {
				fav := true
				options.Favorite = &fav
			}
			// Archived links are hidden unless asked for.
			archived := c.Bool("archived")
			options.Archived = &archived

			printLinks(s.FilterLinks(options))
			return nil
		},
	}
}

func searchCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search links by title, URL, description or tag",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := c.Args().First()
			if query == "" {
				return fmt.Errorf("usage: deck search <query>")
			}
			printLinks(s.SearchLinks(query))
			return nil
		},
	}
}

func favCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "fav",
		Usage:     "Toggle a link's favorite flag",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			link, err := s.ToggleFavorite(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("%s favorite=%v\n", link.Title, link.Favorite)
			return nil
		},
	}
}

func archiveCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Toggle a link's archived flag",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			link, err := s.ToggleArchive(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("%s archived=%v\n", link.Title, link.Archived)
			return nil
		},
	}
}

func rmCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a link",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			return s.DeleteLink(c.Args().First())
		},
	}
}

func foldersCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "Manage folders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List folders with link counts",
				Action: func(c *cli.Context) error {
					for _, folder := range s.Folders() {
						fmt.Printf("%-24s %3d links  %s\n", folder.Name, folder.LinkCount, folder.ID)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Create a folder",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "icon", Usage: "folder icon"},
					&cli.StringFlag{Name: "color", Usage: "hex color, random if unset"},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("usage: deck folders add <name>")
					}
					folder := s.AddFolder(name, c.String("icon"), c.String("color"))
					fmt.Printf("Added folder %s (%s)\n", folder.Name, folder.ID)
					return nil
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete an empty folder",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					return s.DeleteFolder(c.Args().First())
				},
			},
		},
	}
}

func tagsCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List tags with link counts",
		Action: func(c *cli.Context) error {
			for _, tag := range s.Tags() {
				fmt.Printf("%-24s %3d links  %s\n", tag.Name, tag.LinkCount, tag.Color)
			}
			return nil
		},
	}
}

func exportCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export links as JSON",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: deck export <file>")
			}

			data, err := json.MarshalIndent(s.ExportLinks(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Exported %d links to %s\n", len(s.ExportLinks()), path)
			return nil
		},
	}
}

func importCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import links from JSON, replacing the current set",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: deck import <file>")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var links []store.Link
			if err := json.Unmarshal(data, &links); err != nil {
				return fmt.Errorf("invalid import file: %w", err)
			}

			s.ImportLinks(links)
			fmt.Printf("Imported %d links\n", len(links))
			return nil
		},
	}
}

func clearCommand(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Remove all links and tags (folders survive)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return fmt.Errorf("refusing to clear without --yes")
			}
			s.ClearAllLinks()
			fmt.Println("Cleared all links")
			return nil
		},
	}
}

func printLinks(links []store.Link) {
	for _, link := range links {
		marker := " "
		if link.Favorite {
			marker = "*"
		}
		fmt.Printf("%s %-40s %s\n", marker, link.Title, link.URL)
		if link.Folder != "" || len(link.Tags) > 0 {
			fmt.Printf("    folder=%s tags=%v id=%s\n", link.Folder, link.Tags, link.ID)
		} else {
			fmt.Printf("    id=%s\n", link.ID)
		}
	}
}
