// Package cli implements the t4 command-line client.
//
// Every command shares one RPC client provider built from the client config
// (env, optional JSON file) and the persistent flags, so calls issued by a
// command go through the same batch link and query cache.
package cli
