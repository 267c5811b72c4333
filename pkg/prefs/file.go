package prefs

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/matzehuels/gridfit/pkg/errors"
)

// FileSource loads preferences from a TOML or YAML file into a Store.
type FileSource struct {
	path   string
	store  *Store
	v      *viper.Viper
	logger *log.Logger
}

// NewFileSource returns a source for path. The file type is taken from the
// extension. A nil logger discards output.
func NewFileSource(path string, store *Store, logger *log.Logger) *FileSource {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	return &FileSource{path: path, store: store, v: v, logger: logger}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDockHidden.String(), d.DockHidden)
	v.SetDefault(KeyDockRows.String(), d.DockRows)
	v.SetDefault(KeyDockScale.String(), d.DockScale)
	v.SetDefault(KeyFullWidthWidgets.String(), d.FullWidthWidgets)
	v.SetDefault(KeyHomeLabelRows.String(), d.HomeLabelRows)
	v.SetDefault(KeyDrawerLabelRows.String(), d.DrawerLabelRows)
	v.SetDefault(KeyUseCustomDockOpacity.String(), d.UseCustomDockOpacity)
	v.SetDefault(KeyDrawerPaddingScale.String(), d.DrawerPaddingScale)
}

// Path returns the file path.
func (f *FileSource) Path() string { return f.path }

// Load reads the file, pushes the result into the store and returns it.
func (f *FileSource) Load() (Config, error) {
	if err := f.v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read preferences %s", f.path)
	}
	cfg, err := f.decode()
	if err != nil {
		return Config{}, err
	}
	changed := f.store.Replace(cfg)
	f.logger.Debug("preferences loaded", "path", f.path, "changed", len(changed))
	return f.store.Snapshot(), nil
}

func (f *FileSource) decode() (Config, error) {
	var cfg Config
	if err := f.v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode preferences %s", f.path)
	}
	return cfg.Normalize(), nil
}

// Watch reloads the file on every write until ctx is done. A file that fails
// to decode is logged and skipped; the store keeps its previous state.
func (f *FileSource) Watch(ctx context.Context) error {
	f.v.OnConfigChange(func(e fsnotify.Event) { f.reload(ctx, e) })
	f.v.WatchConfig()

	<-ctx.Done()
	return nil
}

// reload handles one file event. viper keeps its watcher running after
// Watch returns, so events arriving once ctx is done are dropped.
func (f *FileSource) reload(ctx context.Context, e fsnotify.Event) {
	if ctx.Err() != nil {
		return
	}
	if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	cfg, err := f.decode()
	if err != nil {
		f.logger.Warn("ignoring preference change", "path", e.Name, "err", err)
		return
	}
	changed := f.store.Replace(cfg)
	if len(changed) > 0 {
		f.logger.Info("preferences changed", "path", e.Name, "keys", changed)
	}
}
