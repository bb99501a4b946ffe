// Package all imports all available book adapters for side-effect
// registration.
//
// Import this package from your main to ensure all adapters are registered:
//   import _ "github.com/oddsdesk/marketfeed/internal/books/all"
package all

import (
	_ "github.com/oddsdesk/marketfeed/internal/books/draftkings"
	_ "github.com/oddsdesk/marketfeed/internal/books/fanduel"
)
