package operator

import "github.com/dvpolyakov/computational-graph/pkg/record"

// Mapper transforms one upstream row into zero or more output rows. The
// returned slice's order is preserved in the output stream. Mappers must
// not modify the input row; they emit fresh rows instead.
type Mapper func(row record.Row) ([]record.Row, error)

// Folder merges one upstream row into the accumulator and returns the
// new accumulator. The engine applies folders strictly left to right in
// arrival order, so associativity is not required.
type Folder func(acc record.Row, row record.Row) (record.Row, error)

// Reducer transforms one group — a non-empty run of consecutive rows
// agreeing on all grouping keys — into zero or more output rows.
// Reducers must not modify the rows in the group.
type Reducer func(group []record.Row) ([]record.Row, error)
