package android

import "sync"

// callbackRegistry tracks in-flight download requests by their single-use
// correlation token. Each token is registered immediately before the OS
// action is triggered and consumed exactly once, either by the result
// broadcast (resolve) or by the initiator giving up (cancel). A second
// resolve for the same token is a no-op, which is what makes the
// at-most-once-unregister invariant hold even if the OS fires twice.
type callbackRegistry struct {
	mu      sync.Mutex
	pending map[string]chan DownloadResult
}

func newCallbackRegistry() *callbackRegistry {
	return &callbackRegistry{pending: make(map[string]chan DownloadResult)}
}

// register creates the one-shot channel for token. The channel is buffered
// so resolve never blocks on a caller that already went away.
func (r *callbackRegistry) register(token string) <-chan DownloadResult {
	ch := make(chan DownloadResult, 1)
	r.mu.Lock()
	r.pending[token] = ch
	r.mu.Unlock()
	return ch
}

// resolve delivers the result for token and unregisters it. It reports
// false when the token is unknown or already consumed.
func (r *callbackRegistry) resolve(token string, res DownloadResult) bool {
	r.mu.Lock()
	ch, ok := r.pending[token]
	if ok {
		delete(r.pending, token)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	ch <- res
	return true
}

// cancel unregisters token without delivering a result.
func (r *callbackRegistry) cancel(token string) {
	r.mu.Lock()
	delete(r.pending, token)
	r.mu.Unlock()
}

// inflight reports the number of outstanding registrations.
func (r *callbackRegistry) inflight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
