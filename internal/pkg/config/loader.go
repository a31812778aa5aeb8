package config

import (
	"sync"

	"go.uber.org/zap"

	"github.com/amethyst-mc/amethyst/internal/pkg/config/provider"
)

type OnChange func(cfg map[string]any)

// Loader reads the config file and reports every later change of it.
type Loader struct {
	provider provider.Provider
	onChange OnChange
	logger   *zap.Logger

	dataCh    chan provider.Data
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a Loader for the file at path. If onChange is nil the file
// is not watched.
func New(path string, onChange OnChange, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		provider: provider.NewFile(provider.FileConfig{
			Files: []string{path},
			Watch: onChange != nil,
		}, logger),
		onChange: onChange,
		logger:   logger,
		dataCh:   make(chan provider.Data),
		done:     make(chan struct{}),
	}
}

// Read returns the current content of the config file. It must only be
// called once.
func (l *Loader) Read() (map[string]any, error) {
	data, err := l.provider.Provide(l.dataCh)
	if err != nil {
		return nil, err
	}

	if l.onChange != nil {
		go l.listen()
	}

	if data.IsNil() {
		return map[string]any{}, nil
	}
	return data.Config, nil
}

func (l *Loader) listen() {
	for {
		select {
		case data := <-l.dataCh:
			if data.IsNil() {
				continue
			}

			l.logger.Info("config changed",
				zap.Stringer("provider", data.Type),
			)
			l.onChange(data.Config)
		case <-l.done:
			return
		}
	}
}

func (l *Loader) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	return l.provider.Close()
}
