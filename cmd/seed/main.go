// Command seed fills the database with demo accounts, listings and follows.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/seed"
)

func main() {
	presetName := flag.String("preset", "demo", "preset to apply")
	presetFile := flag.String("file", "", "YAML file with custom presets (defaults to the built-in set)")
	shouldClean := flag.Bool("clean", true, "clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "build records without writing them")
	fast := flag.Bool("fast", false, "skip bcrypt and store the seed password as-is (local only)")
	flag.Parse()

	presets := seed.BuiltinPresets()
	if *presetFile != "" {
		loaded, err := seed.LoadPresetFile(*presetFile)
		if err != nil {
			log.Fatalf("❌ Failed to load presets: %v", err)
		}
		presets = loaded
	}
	preset, ok := presets[*presetName]
	if !ok {
		log.Fatalf("❌ Unknown preset %q (available: %s)", *presetName, strings.Join(seed.PresetNames(presets), ", "))
	}

	log.Println("🌱 Database Seeder")
	log.Printf("Preset %s: %d accounts, %d posts, %d follows each, clean=%v",
		preset.Name, preset.Accounts, preset.Posts, preset.FollowsPerAccount, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to seed a production database")
	}

	opts := seed.Options{DryRun: *dryRun, SkipBcrypt: *fast}
	var s *seed.Seeder
	if *dryRun {
		s = seed.NewSeeder(nil, opts)
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() { _ = database.Close() }()
		s = seed.NewSeeder(db, opts)
	}

	ctx := context.Background()
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx, preset)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Done: %d accounts, %d posts, %d connections", sum.Accounts, sum.Posts, sum.Connections)
	log.Printf("📧 All generated accounts have the password: %s", seed.DefaultPassword)
}
