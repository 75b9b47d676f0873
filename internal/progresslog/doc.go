// Copyright (c) 2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package progresslog provides periodic logging for header sync progress.

## Feature Overview

- Maintains a cumulative total of headers processed between each logging
  interval
- Logs the cumulative total, plus an estimated completion percentage,
  every 10 seconds
- Immediately logs any outstanding total when header sync completes
*/
package progresslog
