package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/cjnemes/sympathetic-resonance/internal/config"
	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/logger"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
	"github.com/cjnemes/sympathetic-resonance/internal/quest"
	"github.com/cjnemes/sympathetic-resonance/internal/store"
)

func main() {
	configFile := flag.String("config", "data/game.yaml", "Path to game config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	questDir := flag.String("quests", "", "Path to quest content directory (overrides config)")
	dbDriver := flag.String("db-driver", "", "Save database driver: sqlite or postgres (overrides config)")
	dbDSN := flag.String("db", "", "Save database connection string (overrides config)")
	playerName := flag.String("player", "Apprentice", "Player character name for a new game")
	slot := flag.String("slot", "default", "Save slot to load from and save to")
	newGame := flag.Bool("new", false, "Start a new game even if the slot has a save")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting Sympathetic Resonance")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *questDir != "" {
		cfg.Content.QuestDir = *questDir
	}
	if *dbDriver != "" {
		cfg.Database.Driver = *dbDriver
	}
	if *dbDSN != "" {
		cfg.Database.DSN = *dbDSN
	}

	catalog, err := quest.LoadDirectory(cfg.Content.QuestDir)
	if err != nil {
		log.Fatalf("Failed to load quest content: %v", err)
	}

	saves, err := store.Open(store.DialectType(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open save store: %v", err)
	}
	defer saves.Close()

	engine := quest.NewEngine(catalog)
	p, factions := loadSession(saves, engine, *slot, *playerName, *newGame)

	fmt.Printf("Welcome, %s.\n\n", p.Name)
	printAvailableQuests(engine, p)
	printRecommendations(engine, p)

	// A fresh character begins with the tutorial.
	if _, started := engine.Progress("resonance_foundation"); !started {
		p.CurrentLocation = "practice_hall"
		if msg, err := engine.StartQuest("resonance_foundation", p); err == nil {
			fmt.Println(msg)
		} else if !errors.Is(err, quest.ErrNotFound) {
			logger.Warning("Could not start tutorial quest", "error", err)
		}
	}

	for _, questID := range engine.ActiveQuestIDs() {
		status, err := engine.QuestStatus(questID)
		if err != nil {
			continue
		}
		fmt.Println(status)
	}

	progress, global := engine.Snapshot()
	data := &store.SaveData{Player: p, Progress: progress, Global: global, Reputation: factions}
	if _, err := saves.Save(*slot, data); err != nil {
		log.Fatalf("Failed to save game: %v", err)
	}
	logger.Info("Session saved", "slot", *slot)
}

// loadSession restores the slot's latest save, or begins a fresh game if
// none exists or -new was given.
func loadSession(saves *store.SaveStore, engine *quest.Engine, slot, name string, fresh bool) (*player.Player, *faction.System) {
	if !fresh {
		data, err := saves.Load(slot)
		if err == nil {
			engine.Restore(data.Progress, data.Global)
			logger.Info("Save loaded", "slot", slot, "player", data.Player.Name)
			return data.Player, data.Reputation
		}
		if !errors.Is(err, store.ErrNoSave) {
			log.Fatalf("Failed to load save: %v", err)
		}
	}

	logger.Info("Starting new game", "player", name)
	return player.New(name), faction.NewSystem()
}

func printAvailableQuests(engine *quest.Engine, p *player.Player) {
	available := engine.AvailableQuests(p)
	if len(available) == 0 {
		fmt.Println("No quests are available right now.")
		return
	}
	fmt.Println("Available quests:")
	for _, def := range available {
		fmt.Printf("  %s (%s, %s)\n", def.Title, def.Category, def.Difficulty)
	}
	fmt.Println()
}

func printRecommendations(engine *quest.Engine, p *player.Player) {
	recs := engine.Recommendations(p)
	if len(recs) == 0 {
		return
	}
	fmt.Println("Recommended for you:")
	for _, rec := range recs {
		if def, ok := engine.Catalog().Get(rec.QuestID); ok {
			fmt.Printf("  %s - %s\n", def.Title, rec.Reason)
		}
	}
	fmt.Println()
}
