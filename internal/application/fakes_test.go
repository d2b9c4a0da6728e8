package application

import (
	"context"
	"sync"

	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

type fakeGateway struct {
	mu         sync.Mutex
	directives []string
	reply      string
	err        error
	wait       func(ctx context.Context) error
}

func (f *fakeGateway) Complete(ctx context.Context, directive string, _ repository.CompletionOptions) (string, error) {
	f.mu.Lock()
	f.directives = append(f.directives, directive)
	f.mu.Unlock()
	if f.wait != nil {
		if err := f.wait(ctx); err != nil {
			return "", err
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGateway) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.directives...)
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return p.err
}

type fakeArchiver struct {
	userID   int64
	analysis string
	err      error
}

func (a *fakeArchiver) Archive(_ context.Context, userID int64, analysis string) (string, error) {
	a.userID, a.analysis = userID, analysis
	return "gs://bucket/x.md", a.err
}
