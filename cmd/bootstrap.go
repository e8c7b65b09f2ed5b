/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// bootstrap.go handles lazy repository initialisation for commands.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the repository, opens the database, and loads the tag configuration.
//
// Design: the store is expensive to open (WAL mode, pragmas) and must be
// shared across the command's lifetime. sync.Once guarantees exactly one
// initialisation per process. Bootstrap commands (init, config, version) and
// file-only commands (validate, migrate) skip the store entirely so they
// work before "papertrack init" has ever run.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/qiwen-lab/papertrack/internal/config"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/repo"
	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
//
// Why this exists: most commands need the paper database, but some must work
// without it. "init" creates it, "config" and "version" never touch it, and
// "validate" and "migrate" operate on update files directly so they stay
// useful before a repository exists.
var noStoreCommands = map[string]bool{
	"init":     true,
	"config":   true,
	"version":  true,
	"validate": true,
	"migrate":  true,
}

// authorRequiredCommands lists commands that require author configuration.
// These are commands that write paper data with contributor attribution.
var authorRequiredCommands = map[string]bool{
	"import": true,
}

// Shared command state, created during bootstrap.
var (
	appStore *store.SQLiteStore
	appCfg   *config.Config
	appTags  *tagcfg.Config
	bootOnce sync.Once
	bootErr  error
)

// bootstrap discovers the repository, opens the store, and loads both the
// application config and the tag configuration.
func bootstrap() error {
	bootOnce.Do(func() {
		dbPath := ""
		if d := Dir(); d != "" {
			dbPath = repo.DBPath(d)
		} else {
			var err error
			dbPath, err = repo.Discover()
			if err != nil {
				bootErr = err
				return
			}
		}

		s, err := store.Open(dbPath)
		if err != nil {
			bootErr = fmt.Errorf("opening database: %w", err)
			return
		}
		if err := s.Init(); err != nil {
			s.Close()
			bootErr = fmt.Errorf("initialising database: %w", err)
			return
		}
		appStore = s

		// Set repository identifier for audit logging
		log.SetRepo(filepath.Dir(dbPath))

		appCfg, err = config.Load()
		if err != nil {
			bootErr = err
			return
		}

		appTags, err = tagcfg.Load(tagcfg.PathIn(filepath.Dir(dbPath)))
		if err != nil {
			bootErr = err
			return
		}
	})
	return bootErr
}

// loadTagConfig returns the tag configuration for storeless commands:
// the discovered repository's tags.yaml when one exists, the built-in
// defaults otherwise.
func loadTagConfig() (*tagcfg.Config, error) {
	if appTags != nil {
		return appTags, nil
	}

	repoDir := ""
	if d := Dir(); d != "" {
		repoDir = filepath.Join(d, repo.Dir)
	} else if found, err := repo.DiscoverDir(); err == nil {
		repoDir = found
	}
	if repoDir == "" {
		return tagcfg.Default(), nil
	}
	return tagcfg.Load(tagcfg.PathIn(repoDir))
}
