// Command deckimport loads a vocabulary spreadsheet into a deck.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/namsral/flag"

	"github.com/vytor/lexiflash/internal/config"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/importer"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository/sqlstore"
	"github.com/vytor/lexiflash/internal/services"
)

type options struct {
	dbDriver  string
	dbPath    string
	file      string
	deckName  string
	deckID    int64
	languageA string
	languageB string
	logLevel  string
	columns   importer.Config
}

func parseArgs(args []string) (options, error) {
	o := options{columns: importer.DefaultConfig()}
	fs := flag.NewFlagSet("deckimport", flag.ContinueOnError)

	fs.StringVar(&o.dbDriver, "db-driver", config.DriverSQLite, "database driver: sqlite3 or pgx")
	fs.StringVar(&o.dbPath, "db-path", "file:lexiflash.db", "database DSN or file path")
	fs.StringVar(&o.file, "file", "", "spreadsheet to import (.xlsx or .csv)")
	fs.StringVar(&o.deckName, "deck-name", "", "name of the deck to create")
	fs.Int64Var(&o.deckID, "deck-id", 0, "append to this existing deck instead of creating one")
	fs.StringVar(&o.languageA, "language-a", "", "language of the term column")
	fs.StringVar(&o.languageB, "language-b", "", "language of the translation column")
	fs.StringVar(&o.logLevel, "log-level", "INFO", "log level")
	fs.StringVar(&o.columns.TermColumn, "term-col", o.columns.TermColumn, "column holding the term")
	fs.StringVar(&o.columns.TranslationColumn, "translation-col", o.columns.TranslationColumn, "column holding the translation")
	fs.StringVar(&o.columns.ExampleAColumn, "example-a-col", o.columns.ExampleAColumn, "column holding the term example; empty to skip")
	fs.StringVar(&o.columns.ExampleBColumn, "example-b-col", o.columns.ExampleBColumn, "column holding the translated example; empty to skip")
	fs.StringVar(&o.columns.SheetName, "sheet", "", "sheet name; first sheet when empty")
	fs.IntVar(&o.columns.StartRow, "start-row", o.columns.StartRow, "first data row (1-based)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.file == "" {
		return o, fmt.Errorf("-file is required")
	}
	if o.deckID == 0 && strings.TrimSpace(o.deckName) == "" {
		return o, fmt.Errorf("either -deck-name or -deck-id is required")
	}
	return o, nil
}

func main() {
	o, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(logger.WithLevel(logger.ParseLevel(o.logLevel)), logger.WithColors(true)).WithPrefix("deckimport")
	logger.SetDefault(log)

	res, err := importer.ReadFile(o.file, o.columns)
	if err != nil {
		log.Error("failed to read %s: %v", o.file, err)
		os.Exit(1)
	}
	for _, e := range res.Errors {
		log.Warn("%s", e)
	}
	log.Info("parsed %d rows: %d words, %d skipped", res.Processed, len(res.Words), res.Skipped)

	database, err := db.Open(o.dbDriver, o.dbPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	svc := services.NewImportService(sqlstore.NewCatalogRepository(database.DB))
	ctx := logger.NewContext(context.Background(), log)

	if o.deckID > 0 {
		n, err := svc.AppendWords(ctx, o.deckID, res.Words)
		if err != nil {
			log.Error("import failed: %v", err)
			os.Exit(1)
		}
		log.Info("appended %d words to deck %d", n, o.deckID)
		return
	}

	deckID, err := svc.ImportDeck(ctx, models.Deck{
		Name:      strings.TrimSpace(o.deckName),
		LanguageA: o.languageA,
		LanguageB: o.languageB,
	}, res.Words)
	if err != nil {
		log.Error("import failed: %v", err)
		os.Exit(1)
	}
	log.Info("created deck %d with %d words", deckID, len(res.Words))
}
