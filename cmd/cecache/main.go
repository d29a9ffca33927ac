// Command cecache manages the Citoyen Éclairé on-device cache: the
// settings-screen surface (storage size, cache clear, retention sweep)
// plus profile and preference sync against the hosted backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/citoyen-eclaire/appcore/internal/identity"
	"github.com/citoyen-eclaire/appcore/internal/language"
	"github.com/citoyen-eclaire/appcore/internal/model"
	"github.com/citoyen-eclaire/appcore/internal/remote/postgres"
	"github.com/citoyen-eclaire/appcore/internal/service"
	"github.com/citoyen-eclaire/appcore/internal/store"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "cecache")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cecache")
}

func loadToken(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", fmt.Errorf("empty token file %s", path)
	}
	return tok, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `cecache
Usage:
  cecache [-db file] [-dsn postgres://...] [-token file] <cmd> [args]

Commands:
  size                         approximate cache size
  purge                        evict articles older than 30 days
  clear                        empty the article cache
  list                         cached articles, newest first
  save     -id <uuid>          cache an article for offline reading (needs -dsn)
  rm       -id <uuid>          remove a cached article
  profile                      fetch/sync the profile (needs -dsn, -token)
  set-lang -lang fr|ht         change preferred language (needs -dsn, -token)
  set-name -name <text>        change display name (needs -dsn, -token)
  prefs                        fetch/sync preferences (needs -dsn, -token)
  set-dark -on|-off [-auto]    toggle dark mode (needs -dsn, -token)
  reset                        drop the user's mirrored rows (needs -token)
  version
`)
	os.Exit(2)
}

// main wires the store, the gateways and the services, then dispatches
// the subcommand.
func main() {
	dbPath := flag.String("db", filepath.Join(cfgDir(), "citoyen_eclaire.db"), "cache database file")
	dsn := flag.String("dsn", "", "backend PostgreSQL DSN (empty = offline)")
	tokenPath := flag.String("token", filepath.Join(cfgDir(), "token"), "access token file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	_ = os.MkdirAll(filepath.Dir(*dbPath), 0o700)
	st, err := store.Open(ctx, *dbPath, logger)
	if err != nil {
		logger.Fatal("open cache", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	var db *postgres.DB
	if *dsn != "" {
		if db, err = postgres.New(ctx, *dsn); err != nil {
			logger.Fatal("connect backend", zap.Error(err))
		}
		defer db.Close()
	}
	needRemote := func() *postgres.DB {
		if db == nil {
			logger.Fatal("this command needs -dsn")
		}
		return db
	}
	whoami := func() identity.Identity {
		tok, err := loadToken(*tokenPath)
		if err != nil {
			logger.Fatal("load access token", zap.Error(err))
		}
		ident, err := identity.FromAccessToken(tok)
		if err != nil {
			logger.Fatal("decode access token", zap.Error(err))
		}
		return ident
	}

	storageSvc := service.NewStorageService(st, logger)

	switch cmd {
	case "version":
		fmt.Printf("cecache %s (%s)\n", version, buildDate)

	case "size":
		est, err := storageSvc.Estimate(ctx)
		if err != nil {
			logger.Fatal("estimate", zap.Error(err))
		}
		fmt.Printf("%d %s\n", est.Size, est.Unit)

	case "purge":
		n, err := storageSvc.PurgeOld(ctx)
		if err != nil {
			logger.Fatal("purge", zap.Error(err))
		}
		fmt.Printf("evicted %d article(s)\n", n)

	case "clear":
		n, err := storageSvc.ClearAll(ctx)
		if err != nil {
			logger.Fatal("clear", zap.Error(err))
		}
		fmt.Printf("removed %d article(s)\n", n)

	case "list":
		articles, err := service.NewArticleService(st, nil, logger).List(ctx)
		if err != nil {
			logger.Fatal("list", zap.Error(err))
		}
		for _, a := range articles {
			fmt.Printf("%s  %s  %s\n", a.ID, a.SavedAt.Format("2006-01-02 15:04"), a.TitleFR)
		}

	case "save":
		id := parseID(args)
		svc := service.NewArticleService(st, postgres.NewArticleRepo(needRemote()), logger)
		a, err := svc.SaveForOffline(ctx, id)
		if err != nil {
			logger.Fatal("save article", zap.Error(err))
		}
		fmt.Printf("cached %q (saved at %s)\n", a.TitleFR, a.SavedAt.Format("2006-01-02 15:04"))

	case "rm":
		id := parseID(args)
		if err := service.NewArticleService(st, nil, logger).Remove(ctx, id); err != nil {
			logger.Fatal("remove article", zap.Error(err))
		}

	case "profile":
		ident := whoami()
		svc := newProfileService(st, needRemote(), logger)
		p, err := svc.Fetch(ctx, ident)
		if err != nil {
			logger.Fatal("fetch profile", zap.Error(err))
		}
		printProfile(p)

	case "set-lang":
		fs := flag.NewFlagSet("set-lang", flag.ExitOnError)
		langFlag := fs.String("lang", "", "fr|ht")
		_ = fs.Parse(args)
		ident := whoami()
		l := model.Language(*langFlag)
		p, err := newProfileService(st, needRemote(), logger).
			Update(ctx, ident, model.ProfilePatch{PreferredLanguage: &l})
		if err != nil {
			logger.Fatal("set language", zap.Error(err))
		}
		printProfile(p)

	case "set-name":
		fs := flag.NewFlagSet("set-name", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		_ = fs.Parse(args)
		ident := whoami()
		p, err := newProfileService(st, needRemote(), logger).
			Update(ctx, ident, model.ProfilePatch{FullName: name})
		if err != nil {
			logger.Fatal("set name", zap.Error(err))
		}
		printProfile(p)

	case "prefs":
		ident := whoami()
		svc := service.NewPreferencesService(st, postgres.NewPreferencesRepo(needRemote()), logger)
		p, err := svc.Fetch(ctx, ident.UserID)
		if err != nil {
			logger.Fatal("fetch preferences", zap.Error(err))
		}
		printPreferences(p)

	case "set-dark":
		fs := flag.NewFlagSet("set-dark", flag.ExitOnError)
		on := fs.Bool("on", false, "enable dark mode")
		off := fs.Bool("off", false, "disable dark mode")
		auto := fs.Bool("auto", false, "follow the system appearance instead")
		_ = fs.Parse(args)
		ident := whoami()
		var patch model.PreferencesPatch
		switch {
		case *auto:
			t := true
			patch.DarkModeAuto = &t
		case *on || *off:
			v := *on
			patch.DarkMode = &v
		default:
			usage()
		}
		svc := service.NewPreferencesService(st, postgres.NewPreferencesRepo(needRemote()), logger)
		p, err := svc.Update(ctx, ident.UserID, patch)
		if err != nil {
			logger.Fatal("set dark mode", zap.Error(err))
		}
		printPreferences(p)

	case "reset":
		ident := whoami()
		if err := st.ClearUserData(ctx, ident.UserID); err != nil {
			logger.Fatal("reset", zap.Error(err))
		}
		fmt.Println("local user data cleared")

	default:
		usage()
	}
}

func newProfileService(st *store.Store, db *postgres.DB, logger *zap.Logger) *service.ProfileServiceImpl {
	sel := language.NewSelector(model.LanguageFR)
	return service.NewProfileService(st, postgres.NewProfileRepo(db), postgres.NewAuthMetadataRepo(db), sel, logger)
}

func parseID(args []string) uuid.UUID {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	raw := fs.String("id", "", "article id (uuid)")
	_ = fs.Parse(args)
	id, err := uuid.FromString(*raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -id: %v\n", err)
		os.Exit(2)
	}
	return id
}

func printProfile(p *model.UserProfile) {
	name := ""
	if p.FullName != nil {
		name = *p.FullName
	}
	fmt.Printf("%s\t%s\t%q\tlang=%s\n", p.ID, p.Email, name, p.PreferredLanguage)
}

func printPreferences(p *model.UserPreferences) {
	fmt.Printf("dark=%v auto=%v notif=%v sound=%v download=%v text=%.1f\n",
		p.DarkMode, p.DarkModeAuto, p.NotificationsEnabled, p.NotificationSound,
		p.AutoDownload, p.TextSize)
}
