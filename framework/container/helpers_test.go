package container

import (
	"errors"
	"sync/atomic"
)

// Shared test types used across test files.

type testLogger interface {
	Log(msg string) string
}

// consoleLogger has no construction capability.
type consoleLogger struct{ prefix string }

func (l *consoleLogger) Log(msg string) string { return l.prefix + msg }

// fileLogger is DefaultConstructible.
type fileLogger struct {
	path      string
	initCalls int
}

func (l *fileLogger) Init() {
	l.path = "/var/log/app.log"
	l.initCalls++
}

func (l *fileLogger) Log(msg string) string { return l.path + ": " + msg }

// callCounter is bound as an object so injectable types can report calls.
type callCounter struct {
	inits      atomic.Int32
	injections atomic.Int32
}

// failSwitch makes testService.InitWith fail when bound with fail=true.
type failSwitch struct{ fail bool }

var errInitFailed = errors.New("init failed")

// testService is Injectable only.
type testService struct {
	logger     testLogger
	initCalls  int
	injections int
}

func (s *testService) InitWith(r Resolver) error {
	if sw, ok := r.Lookup(TypeOf[*failSwitch]()); ok && sw.(*failSwitch).fail {
		return errInitFailed
	}
	s.initCalls++
	if c, ok := r.Lookup(TypeOf[*callCounter]()); ok {
		c.(*callCounter).inits.Add(1)
	}
	return nil
}

func (s *testService) InjectDependencies(r Resolver) {
	s.injections++
	s.logger, _ = Resolve[testLogger](r)
	if c, ok := r.Lookup(TypeOf[*callCounter]()); ok {
		c.(*callCounter).injections.Add(1)
	}
}

// hybridObject is both DefaultConstructible and Injectable.
type hybridObject struct {
	initCalls     int
	initWithCalls int
	injections    int
}

func (o *hybridObject) Init()                       { o.initCalls++ }
func (o *hybridObject) InitWith(_ Resolver) error   { o.initWithCalls++; return nil }
func (o *hybridObject) InjectDependencies(Resolver) { o.injections++ }

// plainStruct has no capability at all.
type plainStruct struct{ Name string }
