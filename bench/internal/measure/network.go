// CLAUDE:SUMMARY Per-trial network accumulator: counts responses and buckets transfer bytes by MIME type via CDP events.
package measure

import (
	"strings"
	"sync"

	"github.com/go-rod/rod/lib/proto"
)

// networkTally accumulates one trial's network totals from CDP Network
// events. A tally must be created fresh inside each trial and discarded
// with it: sharing one across trials inflates every count after the
// first.
type networkTally struct {
	mu            sync.Mutex
	requests      int
	totalBytes    float64
	jsBytes       float64
	cssBytes      float64
	mimeByRequest map[proto.NetworkRequestID]string
}

func newNetworkTally() *networkTally {
	return &networkTally{
		mimeByRequest: make(map[proto.NetworkRequestID]string),
	}
}

// onResponse records the response's MIME type so the transfer size can
// be bucketed when loading finishes.
func (t *networkTally) onResponse(e *proto.NetworkResponseReceived) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests++
	if e.Response != nil {
		t.mimeByRequest[e.RequestID] = e.Response.MIMEType
	}
}

// onLoadingFinished adds the wire transfer size of a completed request.
// EncodedDataLength is the on-the-wire total including headers, which is
// what a bundle-size comparison cares about.
func (t *networkTally) onLoadingFinished(e *proto.NetworkLoadingFinished) {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := e.EncodedDataLength
	t.totalBytes += size
	switch classifyMIME(t.mimeByRequest[e.RequestID]) {
	case resourceJS:
		t.jsBytes += size
	case resourceCSS:
		t.cssBytes += size
	}
}

func (t *networkTally) snapshot() (requests int, total, js, css float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests, t.totalBytes, t.jsBytes, t.cssBytes
}

type resourceKind int

const (
	resourceOther resourceKind = iota
	resourceJS
	resourceCSS
)

func classifyMIME(mime string) resourceKind {
	m := strings.ToLower(mime)
	switch {
	case strings.Contains(m, "javascript"), strings.Contains(m, "ecmascript"):
		return resourceJS
	case strings.Contains(m, "text/css"):
		return resourceCSS
	}
	return resourceOther
}
