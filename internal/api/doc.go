// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package api implements the HTTP surface of the VPP server: the chi
// router, per-endpoint request binding and validation, the handlers,
// and the response envelopes.
//
// The wire contract is fixed by the previously deployed service. Error
// bodies are always {"detail": <string>} or, for validation failures,
// {"detail": [{"loc": [...], "msg": ..., "type": ...}, ...]} with 422.
package api
