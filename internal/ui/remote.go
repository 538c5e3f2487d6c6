package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"

	"LocalAnnotate/internal/command"
	annonet "LocalAnnotate/internal/net"
)

const (
	remoteQueue   = 64
	remoteTimeout = 2 * time.Second
)

type remoteCall struct {
	req  command.Request
	done func(command.Response, bool)
}

// RemoteSender forwards panel requests to a host over the network. Requests
// are sent in order by one worker goroutine; callbacks are posted back to the
// UI goroutine.
type RemoteSender struct {
	client  *annonet.Client
	timeout time.Duration
	post    func(func())
	queue   chan remoteCall
}

func NewRemoteSender(client *annonet.Client) *RemoteSender {
	return newRemoteSender(client, fyne.Do)
}

func newRemoteSender(client *annonet.Client, post func(func())) *RemoteSender {
	s := &RemoteSender{
		client:  client,
		timeout: remoteTimeout,
		post:    post,
		queue:   make(chan remoteCall, remoteQueue),
	}
	go s.run()
	return s
}

// Send queues req. When the queue is full the request is dropped and done,
// if set, is told so.
func (s *RemoteSender) Send(req command.Request, done func(command.Response, bool)) {
	select {
	case s.queue <- remoteCall{req: req, done: done}:
	default:
		log.Printf("[PANEL] Dropping %s, host is not keeping up", req.Type)
		if done != nil {
			done(command.Response{}, false)
		}
	}
}

func (s *RemoteSender) run() {
	for {
		select {
		case call := <-s.queue:
			s.deliver(call)
		case <-s.client.Done():
			return
		}
	}
}

func (s *RemoteSender) deliver(call remoteCall) {
	if call.done == nil {
		if err := s.client.Send(call.req); err != nil {
			log.Printf("[PANEL] %s failed: %v", call.req.Type, err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	resp, err := s.client.Do(ctx, call.req)
	cancel()
	ok := err == nil
	if !ok {
		log.Printf("[PANEL] %s failed: %v", call.req.Type, err)
	}
	s.post(func() { call.done(resp, ok) })
}
