package main

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/config"
	"github.com/charlie0129/battview/pkg/display"
	"github.com/charlie0129/battview/pkg/notify"
	"github.com/charlie0129/battview/pkg/observer"
	"github.com/charlie0129/battview/pkg/source"
)

// pipeline is a battery source feeding a notification host.
type pipeline struct {
	conf   *config.File
	host   *notify.Host
	cancel context.CancelFunc
	errCh  chan error
}

// newPipeline loads the config and starts the configured battery source.
func newPipeline(ctx context.Context) (*pipeline, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load config")
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")

	src, err := source.New(conf.Source(), conf.PollInterval())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create battery source")
	}

	return startPipeline(ctx, conf, src), nil
}

func startPipeline(ctx context.Context, conf *config.File, src source.Source) *pipeline {
	host := notify.NewHost(conf.AckTimeout())

	ctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- source.Pump(ctx, src, host)
	}()

	return &pipeline{
		conf:   conf,
		host:   host,
		cancel: cancel,
		errCh:  errCh,
	}
}

// newPanel returns a panel rendering to sink with the configured labels.
func (p *pipeline) newPanel(sink display.Sink) *display.Panel {
	return display.NewPanel(sink, p.conf.Labels())
}

func (p *pipeline) newObserver(handler observer.StatusHandler) *observer.Observer {
	return observer.New(p.host, handler, observer.WithDropStale(p.conf.DropStaleResults()))
}

// Err is sent the source error, if any, once the source stops.
func (p *pipeline) Err() <-chan error {
	return p.errCh
}

func (p *pipeline) Close() {
	p.cancel()
	p.host.Close()
}
