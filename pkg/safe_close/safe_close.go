// Package safe_close coordinates graceful shutdown of attached goroutines
// Package safe_close 协调附加协程的优雅退出
package safe_close

import (
	"sync"
)

// SafeClose broadcasts a close signal to attached goroutines and waits for all
// of them to report completion. The first error sent with the close signal wins.
// SafeClose 向所有附加的协程广播关闭信号，并等待它们全部完成。
// 首个携带错误的关闭信号会被保留。
type SafeClose struct {
	m sync.Mutex

	closeSignal chan struct{}
	closed      bool
	err         error

	wg sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs f in a new goroutine. f must call done() when it finishes and
// should start exiting once closeSignal is closed.
// Attach 在新的协程中运行 f。f 完成时必须调用 done()，
// 并在 closeSignal 关闭后开始退出。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.closed {
		return
	}

	s.wg.Add(1)
	done := sync.OnceFunc(s.wg.Done)
	go f(done, s.closeSignal)
}

// SendCloseSignal closes the signal channel exactly once and records err.
// SendCloseSignal 仅关闭一次信号通道并记录错误。
func (s *SafeClose) SendCloseSignal(err error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// CloseSignal returns the broadcast channel for select loops.
// CloseSignal 返回用于 select 循环的广播通道。
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine has called done, then
// returns the error recorded by the close signal (may be nil).
// WaitClosed 阻塞等待所有附加协程完成，返回关闭信号携带的错误（可能为 nil）。
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.m.Lock()
	defer s.m.Unlock()
	return s.err
}
