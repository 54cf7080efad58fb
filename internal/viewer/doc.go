// Package viewer exposes a resolved system to external tools.
//
// Server answers read-only HTTP queries against the current snapshot of a
// graphstore.Store: the encoded model and its flow graphs. Publisher pushes
// the same views once to a socket.io endpoint, for viewers that listen rather
// than poll.
package viewer
