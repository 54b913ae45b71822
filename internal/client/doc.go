// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client provides the RPC client runtime of front-end processes.
//
// A [Provider] owns one RPC client and one query cache for its whole
// lifetime. Both are built on first use and handed down the call tree
// through [context.Context], so code deep in the tree reaches them with
// [RPCFromContext], [CacheFromContext] or the [Query] and [Mutate] helpers.
package client
