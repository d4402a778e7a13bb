package server

import (
	"math/rand"
	"os"
	"sync"
	"time"
)

const alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(os.Getpid())))
)

const (
	requestIDLen    = 16
	requestIDHeader = "X-Request-Id"
)

// newRequestID tags the log lines of one HTTP request or gRPC call.
func newRequestID() string {
	var b [requestIDLen]byte
	rngMu.Lock()
	for i := 0; i < len(b); i++ {
		b[i] = alphanum[rng.Intn(len(alphanum))]
	}
	rngMu.Unlock()
	return string(b[:])
}
