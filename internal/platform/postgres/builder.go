// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder emitting $n placeholders.
//
// Fixed statements stay as plain SQL constants; the builder is for list
// queries whose WHERE clause depends on request filters.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
