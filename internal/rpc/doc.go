// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rpc implements the typed procedure-call protocol spoken between
// the front-end clients and the API server.
//
// Procedures are addressed by dotted paths ("auth.requestPasswordReset") and
// are either queries (read, sent as GET) or mutations (sent as POST). The
// client side batches calls through [HTTPBatchLink]: every call issued within
// a short window is carried by one HTTP request to
// {base}/{path1},{path2}?batch=1 and answered by a JSON array of results in
// the same order. Inputs and outputs are encoded with a [Transformer]; the
// default [StructuredTransformer] keeps type information JSON loses
// (timestamps, big integers) in a side-channel "meta" object.
//
// The server side is [Router], which decodes the same envelope, dispatches
// to registered handlers and encodes the batch response.
package rpc
