package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/streampair/streampair-go/internal/config"
	"github.com/streampair/streampair-go/pkg/cert"
	"github.com/streampair/streampair-go/pkg/discovery"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/log"
	"github.com/streampair/streampair-go/pkg/pairing"
	"github.com/streampair/streampair-go/pkg/transport"
)

// Options holds the global flags. Non-zero values override the
// configuration file.
type Options struct {
	ConfigPath  string
	StateDir    string
	LogLevel    string
	ProtocolLog string
	UniqueID    string
	DeviceName  string
	Timeout     time.Duration
}

// app is the state shared by the commands of one invocation.
type app struct {
	opts   Options
	stdout io.Writer
	stderr io.Writer

	// newBrowser creates the discovery browser (default: mDNS).
	newBrowser func(discovery.BrowserConfig) (discovery.Browser, error)

	cfg         *config.Config
	logger      *slog.Logger
	store       *host.FileStore
	identity    *cert.FileIdentity
	protocolLog *log.FileLogger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		newBrowser: func(c discovery.BrowserConfig) (discovery.Browser, error) {
			return discovery.NewMDNSBrowser(c)
		},
	}
}

// open loads the configuration and the state directory.
func (a *app) open() error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	a.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, _ := cfg.Level()
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	a.store = host.NewFileStore(cfg.HostsPath())
	if err := a.store.Load(); err != nil {
		return fmt.Errorf("load hosts: %w", err)
	}
	if err := cfg.SeedHosts(a.store); err != nil {
		return err
	}

	a.identity = cert.NewFileIdentity(cfg.StateDir)
	created, err := a.identity.LoadOrGenerate("")
	if err != nil {
		return fmt.Errorf("client identity: %w", err)
	}
	if created {
		a.logger.Info("generated client identity", "dir", cfg.StateDir)
	}

	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("failed to create protocol logger: %w", err)
		}
		a.protocolLog = fl
		a.logger.Debug("protocol logging", "path", cfg.ProtocolLog)
	}
	return nil
}

func (a *app) applyOverrides(cfg *config.Config) {
	if a.opts.StateDir != "" {
		cfg.StateDir = a.opts.StateDir
	}
	if a.opts.LogLevel != "" {
		cfg.LogLevel = a.opts.LogLevel
	}
	if a.opts.ProtocolLog != "" {
		cfg.ProtocolLog = a.opts.ProtocolLog
	}
	if a.opts.UniqueID != "" {
		cfg.UniqueID = a.opts.UniqueID
	}
	if a.opts.DeviceName != "" {
		cfg.DeviceName = a.opts.DeviceName
	}
	if a.opts.Timeout > 0 {
		cfg.RequestTimeout = a.opts.Timeout
	}
}

// close flushes the host store and closes the protocol log.
func (a *app) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Save())
	}
	if a.protocolLog != nil {
		if n := a.protocolLog.Failures(); n > 0 {
			a.logger.Warn("protocol log write failures", "count", n)
		}
		errs = append(errs, a.protocolLog.Close())
	}
	return errors.Join(errs...)
}

// protocolLogger combines the capture file with debug-level operational
// logging of the same events.
func (a *app) protocolLogger() log.Logger {
	var loggers []log.Logger
	if a.protocolLog != nil {
		loggers = append(loggers, a.protocolLog)
	}
	if level, _ := a.cfg.Level(); level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(a.logger))
	}
	if len(loggers) == 0 {
		return nil
	}
	return log.NewMultiLogger(loggers...)
}

func (a *app) newSession() *pairing.Session {
	return pairing.NewSession(pairing.Config{
		Transport:      transport.NewHTTPTransport(transport.HTTPConfig{UniqueID: a.cfg.UniqueID}),
		Identity:       a.identity,
		Hosts:          a.store,
		Timeout:        a.cfg.RequestTimeout,
		DeviceName:     a.cfg.DeviceName,
		Logger:         a.logger,
		ProtocolLogger: a.protocolLogger(),
	})
}

func (a *app) newScanner(timeout time.Duration, iface string) (*discovery.Scanner, error) {
	if timeout <= 0 {
		timeout = a.cfg.Discovery.Timeout
	}
	if iface == "" {
		iface = a.cfg.Discovery.Interface
	}
	browser, err := a.newBrowser(discovery.BrowserConfig{BrowseTimeout: timeout, Interface: iface})
	if err != nil {
		return nil, err
	}
	return discovery.NewScanner(browser, a.store,
		discovery.WithTimeout(timeout),
		discovery.WithLogger(a.logger),
	), nil
}
