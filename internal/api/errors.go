// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import "errors"

// ErrInvalidRefresh indicates a refresh query value outside 0, 1, true, false.
var ErrInvalidRefresh = errors.New("invalid refresh parameter")
