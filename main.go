package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"shopbot/internal/catalog"
	"shopbot/internal/config"
	"shopbot/internal/dialog"
	"shopbot/internal/logger"
	"shopbot/internal/nlu"
	"shopbot/internal/pipeline"
	"shopbot/internal/session"
)

func main() {
	// .env is optional; environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config.yaml: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	ctx := context.Background()

	cat, err := catalog.LoadCSV(cfg.Catalog.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("failed to load catalog")
	}
	log.Info().Int("entries", len(cat.Entries())).Msg("catalog loaded")

	annotator := nlu.NewProseAnnotator(cat.AllBrands())
	norm := nlu.NewNormalizer(cfg.Bot.Aliases, annotator)

	pipe, err := pipeline.New(ctx, norm, cat, *log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build analysis pipeline")
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL, ttl)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory transcripts")
		} else {
			store = rs
			log.Info().Msg("using redis transcript store")
		}
	}

	sessionID := uuid.NewString()
	engine := dialog.New(cat, pipe, store, sessionID, dialog.Config{ResultLimit: cfg.Bot.ResultLimit}, *log)

	bot := color.New(color.FgCyan, color.Bold).Sprint("Bot:")
	you := color.New(color.FgGreen, color.Bold).Sprint("You:")

	render(bot, engine.Open(ctx))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s ", you)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/history" {
			t, err := store.History(ctx, sessionID)
			if err != nil {
				log.Warn().Err(err).Msg("failed to load transcript")
				continue
			}
			fmt.Print(session.RecentContext(t, 20))
			continue
		}

		out, err := engine.AdvanceTurn(ctx, line)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Printf("%s Sorry, something went wrong. Please try again.\n", bot)
			continue
		}
		render(bot, out)
		if out.Done {
			break
		}
	}
}

func render(prefix string, out *dialog.TurnOutput) {
	fmt.Printf("%s %s\n", prefix, out.Message)
	for _, t := range out.Tables {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader(t.Columns)
		for _, row := range t.Rows {
			table.Append(row)
		}
		table.Render()
	}
}
