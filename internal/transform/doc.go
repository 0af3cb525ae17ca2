// Package transform defines the engine-side client interface for the status
// transformer. Pipeline stages and the HTTP/gRPC handlers go through a
// transform.Client, which either runs the rule in-process or calls a remote
// ticketcsv.v1.StatusTransformer over gRPC.
package transform
