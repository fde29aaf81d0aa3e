// Command study runs a terminal study session against a local database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/namsral/flag"

	"github.com/vytor/lexiflash/internal/config"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository/sqlstore"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/session"
	"github.com/vytor/lexiflash/internal/srs"
)

type options struct {
	dbDriver string
	dbPath   string
	userID   string
	deckID   int64
	typed    bool
	seed     uint64
	logFile  string
}

func parseArgs(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("study", flag.ContinueOnError)
	fs.StringVar(&o.dbDriver, "db-driver", config.DriverSQLite, "database driver: sqlite3 or pgx")
	fs.StringVar(&o.dbPath, "db-path", "file:lexiflash.db", "database DSN or file path")
	fs.StringVar(&o.userID, "user", "", "user id to study as")
	fs.Int64Var(&o.deckID, "deck", 0, "deck id")
	fs.BoolVar(&o.typed, "typed", false, "type the translation before revealing it")
	fs.Uint64Var(&o.seed, "seed", 0, "shuffle seed; 0 seeds from the clock")
	fs.StringVar(&o.logFile, "log-file", "study.log", "log destination; the terminal belongs to the UI")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.userID == "" || o.deckID <= 0 {
		return o, fmt.Errorf("-user and -deck are required")
	}
	return o, nil
}

// pickSession prefers due reviews and falls back to discovering unseen words.
func pickSession(q models.Queues) ([]models.Vocabulary, session.Mode) {
	if len(q.Review) > 0 {
		return q.Review, session.Review
	}
	return q.Unseen, session.Discovery
}

func main() {
	o, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logOut, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logOut.Close()
	log := logger.New(logger.WithOutput(logOut), logger.WithColors(false)).WithPrefix("study")
	logger.SetDefault(log)

	database, err := db.Open(o.dbDriver, o.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	catalog := sqlstore.NewCatalogRepository(database.DB)
	progress := sqlstore.NewProgressRepository(database.DB)
	opts := srs.DefaultOptions()
	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	spacer := srs.NewSpacer(opts.Classifier(), opts.LeechMinSpacing, srs.NewSeededSource(seed))
	clock := srs.RealNower{}

	queues, err := services.NewQueueService(catalog, progress, spacer, opts).
		BuildQueues(context.Background(), o.userID, o.deckID, clock.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	words, mode := pickSession(queues)
	if len(words) == 0 {
		fmt.Println("Nothing to study in this deck right now.")
		return
	}

	sessions := services.NewSessionService(progress, sqlstore.NewRatingRepository(database.DB), sqlstore.NewSummaryRepository(database.DB))
	sess := session.New(words, mode, services.NewSessionRater(sessions, o.userID, o.deckID, clock))

	if _, err := tea.NewProgram(newModel(sess, o.typed)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "study session failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Answered %d, %d left, %d not saved.\n", sess.Reviewed(), sess.Remaining(), sess.SaveFailures())
}
