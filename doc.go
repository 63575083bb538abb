/*
Package rowmut stages changes to a single row of a wide-column store
(Cassandra-style: each row holds a sorted set of named columns, plus
counter columns that only support commutative increments).

We implement:

1. Row mutations, fluent accumulators of typed column writes against one row.

2. Counter increments, deltas that merge commutatively on the server and
therefore carry no client timestamp.

3. Deletions, both of the whole row and of an enumerated set of columns.

4. Super columns, a legacy nesting level that scopes a group of columns
under one serialized group name.

5. Mutators, multi-row staging areas that hand out row mutations keyed by
(column family, row key) and encode the result for a write-ahead log.

# Technical Details

**Entries.**
A row mutation appends entries to a Batch in call order and never reads or
rewrites entries that are already there. Each entry is exactly one of:
an absolute-value column write, a counter delta, or a deletion. Absolute
writes resolve last-writer-wins via a client-supplied timestamp obtained
from a Clock at call time; an optional TTL (whole seconds) makes the column
expire. Counter deltas never consult the clock.

**Deletion coalescing.**
Deleting individual columns is cheaper for the server when the column names
travel in a single predicate. The first DeleteColumn call of a builder
appends one deletion entry and keeps a handle to its predicate; every later
DeleteColumn call on the same builder grows that same predicate in place, no
matter what other operations happened in between. The entry stays at the
position of the first call, and names are listed in call order, duplicates
included. Whole-row deletions are never coalesced: every Delete call appends
its own entry. A fresh builder, including the nested builder returned by
WithSuperColumn, always starts its own predicate.

**Serialization.**
Row keys, column names and values are converted to raw bytes by serializers
(see the codec package). Clients bring a serializer per value kind; typed
convenience methods (PutString, PutInt64, ...) bind the standard ones. When
a serializer fails, the failing call appends nothing, and the error sticks
to the Batch: Err returns the first failure, later calls still apply.

## Binary encoding

**Batch**: version (uvarint), then msgpack of the entry list.

**Mutator**: version (uvarint), then msgpack of the staged row list, each row
carrying its column family name, raw key and batch.

The encoding is self-contained and replayable: see the wal package for the
write-ahead log it is designed to feed.
*/
package rowmut
