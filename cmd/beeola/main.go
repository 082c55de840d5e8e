// Command beeola runs the beeola.me blog server and its content tooling.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	beeola "github.com/gbozee/beeola.me"
	"github.com/gbozee/beeola.me/views"
)

// version is set at build time via ldflags.
var version = "dev"

type config struct {
	SiteName        string   `env:"SITE_NAME" envDefault:"beeola.me"`
	SiteURL         string   `env:"SITE_URL" envDefault:"http://localhost:3000"`
	SiteDescription string   `env:"SITE_DESCRIPTION"`
	SiteAuthor      string   `env:"SITE_AUTHOR"`
	Addr            string   `env:"ADDR" envDefault:":3000"`
	DatabasePath    string   `env:"DATABASE_PATH" envDefault:"data/blog.db"`
	Languages       []string `env:"LANGUAGES" envSeparator:","`
	AdminPassword   string   `env:"ADMIN_PASSWORD"`
	SessionSecret   string   `env:"SESSION_SECRET"`
	CookieSecure    bool     `env:"COOKIE_SECURE"`
	StatsEnabled    bool     `env:"STATS_ENABLED" envDefault:"true"`
	StatsRetention  int      `env:"STATS_RETENTION_DAYS" envDefault:"365"`
}

func loadConfig() (config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c config) site() beeola.SiteConfig {
	return beeola.SiteConfig{
		Name:               c.SiteName,
		URL:                c.SiteURL,
		Description:        c.SiteDescription,
		Author:             c.SiteAuthor,
		Addr:               c.Addr,
		DatabasePath:       c.DatabasePath,
		Languages:          c.Languages,
		AdminPassword:      c.AdminPassword,
		SessionSecret:      c.SessionSecret,
		CookieSecure:       c.CookieSecure,
		StatsEnabled:       c.StatsEnabled,
		StatsRetentionDays: c.StatsRetention,
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: beeola import <content-dir>")
			os.Exit(1)
		}
		if err := runImport(os.Args[2]); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Printf("beeola %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	site := cfg.site()
	app := beeola.New(site, views.Defaults(site))
	defer app.Close()
	return app.Start()
}

func runImport(dir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := beeola.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	n, err := beeola.ImportDir(store, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d post variant(s)\n", n)
	return nil
}

func printUsage() {
	fmt.Println(`beeola - the blog engine behind beeola.me

Usage:
  beeola <command> [arguments]

Commands:
  serve           Start the blog server
  import <dir>    Import content files into the database
  version         Print the version
  help            Show this help message`)
}
