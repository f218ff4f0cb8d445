package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/logger"
	"github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/store"
	"github.com/abhisek/guruai/internal/tutor"
)

// services holds everything a command needs to talk to the model.
type services struct {
	store  *store.Store
	logger *zap.Logger
	tutor  *tutor.Tutor
	solver *tutor.Solver
	quiz   quiz.Generator

	// authErr is set when no credential was found.
	authErr error
}

// Close flushes the logger and closes the store.
func (s *services) Close() {
	_ = s.logger.Sync()
	_ = s.store.Close()
}

// buildServices opens the request log, builds the logger and the
// provider chain. A missing API key is not fatal: the orchestrators are
// wired to a provider that fails every call with *llm.ErrAuthentication,
// so the UI shows its fallback instead of exiting.
func buildServices(cmd *cobra.Command, logCfg logger.Config) (*services, error) {
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var authErr error
	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo(), log)
	if err != nil {
		var auth *llm.ErrAuthentication
		if !errors.As(err, &auth) {
			st.Close()
			return nil, err
		}
		log.Warn("llm provider not configured", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		provider = llm.Unauthenticated(cfg.LLM.Provider, auth.Err)
		authErr = err
	}
	log.Info("llm provider ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
	)

	return &services{
		store:  st,
		logger: log,
		tutor:  tutor.New(provider, tutor.DefaultConfig()),
		solver: tutor.NewSolver(provider, tutor.DefaultConfig()),
		quiz:   quiz.New(provider, quiz.DefaultConfig()),

		authErr: authErr,
	}, nil
}
