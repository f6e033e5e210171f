package schema

type AggregatorKind string

const (
	SumKind           AggregatorKind = "sum"
	CountKind         AggregatorKind = "count"
	MinKind           AggregatorKind = "min"
	MaxKind           AggregatorKind = "max"
	AvgKind           AggregatorKind = "avg"
	DistinctCountKind AggregatorKind = "distinct-count"
	MedianKind        AggregatorKind = "median"
	CustomKind        AggregatorKind = "custom"
)

// Database tags the SQL dialect of a median formula.
type Database string

const (
	Postgres Database = "postgres"
	MonetDB  Database = "monetdb"
)

// Aggregator is the aggregation applied to a measure column. Database is
// only meaningful for MedianKind, Formula for MedianKind and CustomKind.
type Aggregator struct {
	Kind     AggregatorKind
	Database Database
	Formula  string
}

var (
	Sum           = Aggregator{Kind: SumKind}
	Count         = Aggregator{Kind: CountKind}
	Min           = Aggregator{Kind: MinKind}
	Max           = Aggregator{Kind: MaxKind}
	Avg           = Aggregator{Kind: AvgKind}
	DistinctCount = Aggregator{Kind: DistinctCountKind}
)

// Median returns a median aggregator computed by an SQL formula in the given dialect.
func Median(db Database, formula string) Aggregator {
	return Aggregator{Kind: MedianKind, Database: db, Formula: formula}
}

// CustomAggregator returns an aggregator backed by a dialect-free SQL formula.
func CustomAggregator(formula string) Aggregator {
	return Aggregator{Kind: CustomKind, Formula: formula}
}

// HasFormula reports whether the aggregator carries an embedded SQL formula.
func (a Aggregator) HasFormula() bool {
	return a.Kind == MedianKind || a.Kind == CustomKind
}

// AggregatorKinds lists every supported aggregator kind.
func AggregatorKinds() []AggregatorKind {
	return []AggregatorKind{SumKind, CountKind, MinKind, MaxKind, AvgKind, DistinctCountKind, MedianKind, CustomKind}
}

// ParseAggregatorKind maps a kind token back to its AggregatorKind.
func ParseAggregatorKind(s string) (AggregatorKind, bool) {
	for _, k := range AggregatorKinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ParseDatabase maps a dialect token back to its Database.
func ParseDatabase(s string) (Database, bool) {
	switch Database(s) {
	case Postgres, MonetDB:
		return Database(s), true
	}
	return "", false
}
