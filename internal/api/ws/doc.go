// Package ws implements the /stream websocket.
//
// Every bus event is forwarded as a StreamMessage. Clients may send
// {"type":"ping"} or {"type":"command","command":...,"args":{...}}; the
// latter runs through the command protocol and is answered on the same
// connection. Slow clients miss events rather than stall publishers.
package ws
