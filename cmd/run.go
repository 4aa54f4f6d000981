package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/roundtutor/internal/companion"
	"github.com/abhisek/roundtutor/internal/config"
	"github.com/abhisek/roundtutor/internal/llm"
	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/session"
	"github.com/abhisek/roundtutor/internal/store"
	"github.com/abhisek/roundtutor/internal/tui"
)

// runApp opens the store, builds the session engine, and launches the
// TUI. A previous session is resumed from its latest snapshot.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := session.Options{
		Events:    eventRepo,
		Snapshots: st.SnapshotRepo(),
	}

	if !cfg.NoCompanion {
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		} else {
			opts.Companion = companion.New(provider)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	bank, err := questionbank.New(rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	engine, err := buildEngine(cmd, bank, st, opts)
	if err != nil {
		return err
	}

	return tui.Run(engine)
}

// buildEngine resumes from the latest snapshot when one exists, unless
// --fresh was given.
func buildEngine(cmd *cobra.Command, bank *questionbank.Bank, st *store.Store, opts session.Options) (*session.Engine, error) {
	if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
		return session.New(bank, opts), nil
	}

	snap, err := st.SnapshotRepo().Latest(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap == nil {
		return session.New(bank, opts), nil
	}
	return session.Resume(bank, snap.Data, opts), nil
}
