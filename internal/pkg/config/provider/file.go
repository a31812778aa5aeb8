package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/df-mc/atomic"
	"github.com/fsnotify/fsnotify"
	"github.com/imdario/mergo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrAlreadyWatching     = errors.New("already watching")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

type FileConfig struct {
	// Files are read in order. Later files override earlier ones.
	Files []string
	// Directories hold drop-in files that override Files.
	Directories []string
	Watch       bool
}

type file struct {
	FileConfig
	watcher *atomic.Value[*fsnotify.Watcher]
	logger  *zap.Logger
}

func NewFile(cfg FileConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &file{
		FileConfig: cfg,
		watcher:    atomic.NewValue[*fsnotify.Watcher](nil),
		logger:     logger,
	}
}

func (p *file) Provide(dataCh chan<- Data) (Data, error) {
	data, err := p.readConfigData()
	if err != nil {
		if !p.Watch {
			return Data{}, err
		}

		p.logger.Warn("failed to read config",
			zap.Error(err),
			zap.Stringer("provider", FileType),
		)
	}

	if p.Watch {
		if p.watcher.Load() != nil {
			return Data{}, ErrAlreadyWatching
		}

		w, err := fsnotify.NewWatcher()
		if err != nil {
			return Data{}, err
		}
		p.watcher.Store(w)

		for _, path := range p.watchPaths() {
			if err := w.Add(path); err != nil {
				w.Close()
				return Data{}, err
			}
		}

		go p.watch(w, dataCh)
	}

	return data, nil
}

// watchPaths returns the parent directory of every file, since editors
// tend to replace files instead of writing to them.
func (p *file) watchPaths() []string {
	seen := map[string]bool{}
	var paths []string
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	}

	for _, f := range p.Files {
		add(filepath.Dir(f))
	}

	for _, dir := range p.Directories {
		add(dir)
	}
	return paths
}

func (p *file) isRelevant(name string) bool {
	name = filepath.Clean(name)
	for _, f := range p.Files {
		if filepath.Clean(f) == name {
			return true
		}
	}

	for _, dir := range p.Directories {
		if filepath.Dir(name) == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

func (p *file) watch(w *fsnotify.Watcher, dataCh chan<- Data) {
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				p.logger.Debug("closing file watcher",
					zap.String("cause", "watcher event channel closed"),
				)
				return
			}

			if !p.isRelevant(e.Name) {
				continue
			}

			if e.Op&fsnotify.Remove == fsnotify.Remove ||
				e.Op&fsnotify.Write == fsnotify.Write ||
				e.Op&fsnotify.Create == fsnotify.Create ||
				e.Op&fsnotify.Rename == fsnotify.Rename {
				data, err := p.readConfigData()
				if err != nil {
					p.logger.Debug("skipping config change",
						zap.Error(err),
						zap.String("file", e.Name),
					)
					continue
				}
				dataCh <- data
			}
		case err, ok := <-w.Errors:
			if !ok {
				p.logger.Debug("closing file watcher",
					zap.String("cause", "watcher error channel closed"),
				)
				return
			}

			p.logger.Error("error while watching config",
				zap.Error(err),
			)
		}
	}
}

func (p *file) Close() error {
	w := p.watcher.Load()
	if w == nil {
		return nil
	}
	p.watcher.Store(nil)
	return w.Close()
}

func (p *file) readConfigData() (Data, error) {
	cfg := map[string]any{}
	var errs error
	for _, f := range p.Files {
		fileData := map[string]any{}
		if err := ReadConfigFile(f, &fileData); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading %s: %w", f, err))
			continue
		}

		if err := mergo.Merge(&cfg, fileData, mergo.WithOverride); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	for _, dir := range p.Directories {
		if err := readConfigsFromDir(dir, &cfg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading directory %s: %w", dir, err))
		}
	}

	if errs != nil {
		return Data{}, errs
	}

	return Data{
		Type:   FileType,
		Config: cfg,
	}, nil
}

func readConfigsFromDir(dir string, v *map[string]any) error {
	readConfig := func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		cfgData := map[string]any{}
		if err := ReadConfigFile(path, &cfgData); err != nil {
			if errors.Is(err, ErrUnsupportedFileType) {
				return nil
			}
			return fmt.Errorf("could not read %s; %v", path, err)
		}

		return mergo.Merge(v, cfgData, mergo.WithOverride)
	}

	return filepath.Walk(dir, readConfig)
}

// ReadConfigFile decodes a JSON or YAML file into v depending on its
// extension.
func ReadConfigFile(filename string, v any) error {
	ext := filepath.Ext(filename)
	switch ext {
	case ".json", ".yml", ".yaml":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	bb, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if ext == ".json" {
		return json.Unmarshal(bb, v)
	}
	return yaml.Unmarshal(bb, v)
}
