/*
Package sseclient provides a client-side decoder for Server-Sent Events
(SSE) streams.

A StreamReader consumes a long-lived HTTP response body and reassembles
it into discrete messages, represented by the Event type. When the
transport fails mid-stream the reader backs off, reconnects and resumes
from the last seen event ID, so transient network issues only surface to
the caller as added latency. Interpretation of the event payloads (JSON
decoding and the like) is left to the caller.

The protocol is described at
https://html.spec.whatwg.org/multipage/server-sent-events.html.
*/
package sseclient
