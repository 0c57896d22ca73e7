package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Source:           ptr.To("auto"),
		PollInterval:     ptr.To("5s"),
		AckTimeout:       ptr.To("10s"),
		DropStaleResults: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads the config at configPath. An empty path, a missing file or
// an empty file all give the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Labels           *RawLabels `json:"labels,omitempty" toml:"labels"`
	Source           *string    `json:"source,omitempty" toml:"source"`
	PollInterval     *string    `json:"pollInterval,omitempty" toml:"pollInterval"`
	AckTimeout       *string    `json:"ackTimeout,omitempty" toml:"ackTimeout"`
	DropStaleResults *bool      `json:"dropStaleResults,omitempty" toml:"dropStaleResults"`
}

type RawLabels struct {
	NotAvailable  *string `json:"notAvailable,omitempty" toml:"notAvailable"`
	NoPowerSource *string `json:"noPowerSource,omitempty" toml:"noPowerSource"`
	PowerAdapter  *string `json:"powerAdapter,omitempty" toml:"powerAdapter"`
	USB           *string `json:"usb,omitempty" toml:"usb"`
	Wireless      *string `json:"wireless,omitempty" toml:"wireless"`
	Charging      *string `json:"charging,omitempty" toml:"charging"`
	Discharging   *string `json:"discharging,omitempty" toml:"discharging"`
	Full          *string `json:"full,omitempty" toml:"full"`
	NotCharging   *string `json:"notCharging,omitempty" toml:"notCharging"`
	Unknown       *string `json:"unknown,omitempty" toml:"unknown"`
}

func (f *File) Labels() Labels {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	labels := DefaultLabels()
	raw := f.c.Labels
	if raw == nil {
		return labels
	}

	labels.NotAvailable = ptr.Deref(raw.NotAvailable, labels.NotAvailable)
	labels.NoPowerSource = ptr.Deref(raw.NoPowerSource, labels.NoPowerSource)
	labels.PowerAdapter = ptr.Deref(raw.PowerAdapter, labels.PowerAdapter)
	labels.USB = ptr.Deref(raw.USB, labels.USB)
	labels.Wireless = ptr.Deref(raw.Wireless, labels.Wireless)
	labels.Charging = ptr.Deref(raw.Charging, labels.Charging)
	labels.Discharging = ptr.Deref(raw.Discharging, labels.Discharging)
	labels.Full = ptr.Deref(raw.Full, labels.Full)
	labels.NotCharging = ptr.Deref(raw.NotCharging, labels.NotCharging)
	labels.Unknown = ptr.Deref(raw.Unknown, labels.Unknown)

	return labels
}

func (f *File) Source() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Source, *defaultFileConfig.Source)
}

func (f *File) PollInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return mustParseDuration(ptr.Deref(f.c.PollInterval, *defaultFileConfig.PollInterval))
}

func (f *File) AckTimeout() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return mustParseDuration(ptr.Deref(f.c.AckTimeout, *defaultFileConfig.AckTimeout))
}

func (f *File) DropStaleResults() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.DropStaleResults, *defaultFileConfig.DropStaleResults)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.filepath == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if strings.EqualFold(filepath.Ext(f.filepath), ".toml") {
		err = toml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}

	if err := conf.validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (c *RawFileConfig) validate() error {
	for name, d := range map[string]*string{
		"pollInterval": c.PollInterval,
		"ackTimeout":   c.AckTimeout,
	} {
		if d == nil {
			continue
		}
		v, err := time.ParseDuration(*d)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to parse %s", name)
		}
		if v <= 0 {
			return pkgerrors.Errorf("%s must be positive, got %s", name, v)
		}
	}
	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"source":           f.Source(),
		"pollInterval":     f.PollInterval(),
		"ackTimeout":       f.AckTimeout(),
		"dropStaleResults": f.DropStaleResults(),
	}
}

// mustParseDuration is only called on values that passed validate or on
// the built-in defaults.
func mustParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
