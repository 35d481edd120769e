//go:build windows

package main

import (
	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/wca"
)

type wcaSource struct {
	enum *wca.Enumerator
	flow wca.DataFlow
}

// openSource must be called on the goroutine that later calls Sessions and
// Close; the enumerator is bound to its COM apartment thread.
func openSource(flow string) (source, error) {
	f, err := wca.ParseDataFlow(flow)
	if err != nil {
		return nil, err
	}
	enum, err := wca.NewEnumerator()
	if err != nil {
		return nil, err
	}
	return &wcaSource{enum: enum, flow: f}, nil
}

func (s *wcaSource) Sessions(opts ...session.Option) ([]*session.Controller, error) {
	return s.enum.Sessions(s.flow, opts...)
}

func (s *wcaSource) Close() {
	s.enum.Close()
}
