package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/invsearch/internal/config"
	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/output"
	"github.com/Aman-CERP/invsearch/internal/search"
	"github.com/Aman-CERP/invsearch/internal/store"
	"github.com/Aman-CERP/invsearch/internal/ui"
)

// session bundles everything a command needs to work on one inventory file.
type session struct {
	cfg     *config.Config
	store   *store.FileStore
	engine  *search.Engine
	lock    *store.FileLock
	out     *output.Writer
	printer *ui.Printer
	color   bool
}

// loadConfig loads configuration for the working directory and applies
// the global flags on top of it.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, inverrors.InternalError("failed to get current directory", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, inverrors.New(inverrors.ErrCodeConfigInvalid, "failed to load configuration", err).
			WithSuggestion("Check .invsearch.yaml and 'invsearch config path', or remove the file to use defaults")
	}

	if dataFile != "" {
		path := dataFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		cfg.Data.File = path
	}
	if noColor {
		cfg.Display.Color = config.ColorNever
	}
	if noLock {
		cfg.Data.NoLock = true
	}
	return cfg, nil
}

// openSession loads config, starts logging and reads the inventory.
// When lock is true the inventory lock is taken unless disabled.
func openSession(cmd *cobra.Command, lock bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	startLogging(cfg.Logging.Level, cfg.Logging.File)

	color := ui.ColorEnabled(cfg.Display.Color, cmd.OutOrStdout())
	s := &session{
		cfg:     cfg,
		store:   store.NewFileStore(cfg.Data.File),
		out:     output.New(cmd.OutOrStdout()),
		printer: ui.NewPrinter(cmd.OutOrStdout(), color),
		color:   color,
	}

	if lock && !cfg.Data.NoLock {
		s.lock = store.NewFileLock(cfg.Data.File)
		if err := s.lock.TryLock(); err != nil {
			return nil, err
		}
	}

	coll, err := s.store.Load()
	if err != nil {
		s.close()
		return nil, err
	}

	s.engine = search.NewEngine(coll,
		search.WithFuzzyDefaults(search.FuzzyOptions{
			Limit:  cfg.Search.FuzzyLimit,
			Cutoff: cfg.Search.FuzzyCutoff,
		}),
		search.WithCacheSize(cfg.Search.CacheSize),
	)
	return s, nil
}

// save writes the in-memory collection back to the data file.
func (s *session) save() error {
	return s.store.Save(s.engine.Collection())
}

// discardAndSave reloads the file and saves it again, dropping unsaved edits.
func (s *session) discardAndSave() error {
	coll := s.engine.Collection()
	if err := s.store.Reload(coll); err != nil {
		return err
	}
	return s.store.Save(coll)
}

// sorted returns the records in the configured default order, or in the
// order given by key when it is set. The collection itself is not reordered.
func (s *session) sorted(key string) ([]*inventory.Record, error) {
	if key == "" {
		key = s.cfg.Display.DefaultSort
	}
	sk, err := inventory.ParseSortKey(key)
	if err != nil {
		return nil, inverrors.New(inverrors.ErrCodeInvalidSortKey, err.Error(), nil).
			WithSuggestion("Use one of: id, name, category, qty")
	}
	records := slices.Clone(s.engine.Collection().Records())
	inventory.SortRecords(records, sk)
	return records, nil
}

// close releases the lock if this session still holds it.
// It is safe to call more than once.
func (s *session) close() {
	if s.engine != nil {
		slog.Debug("session_closed",
			slog.String("path", s.store.Path()),
			slog.Int("records", s.engine.Collection().Len()),
			slog.Int("cached_fuzzy_queries", s.engine.CacheLen()))
	}
	if s.lock == nil || !s.lock.IsLocked() {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		slog.Warn("lock_release_failed",
			slog.String("lock", s.lock.Path()),
			slog.String("error", err.Error()))
	}
}
