package main

import (
	"fmt"
	"os"
	"path/filepath"

	"metronome/internal/api"
	"metronome/internal/config"
	"metronome/internal/repository/sqlite"
	"metronome/internal/services"
	"metronome/internal/validation"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository opens the task store for the factory's environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// the configured filename in the working directory
		repo, err := sqlite.New(filepath.Join(".", cfg.Database.Filename))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// Open builds the business API over a freshly opened store. The returned
// function closes the store
func (rf *RepositoryFactory) Open(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	repo, err := rf.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	businessAPI := api.NewBusinessAPI(repo,
		services.WithDefaultCategory(cfg.Validation.DefaultCategory),
		services.WithValidator(validation.NewValidatorWithConfig(cfg)),
	)
	return businessAPI, repo.Close, nil
}

// getEnvironment reads METRONOME_ENV, defaulting to production
func getEnvironment() Environment {
	switch os.Getenv("METRONOME_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}
